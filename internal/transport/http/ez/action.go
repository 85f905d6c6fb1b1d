// Package ez registers typed handlers on gin groups: bind the input, call the
// handler, write the envelope and map domain errors to HTTP statuses.
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
	resp "raluma-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// AErr carries an explicit status out of a handler.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Action: I is the bound input, O the response data.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool        // require a resolved identity
	MinRole domain.Role // checked only when Auth is set
	Status  int         // success status, 200 when zero; 204 writes no body
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		if a.Auth {
			id, ok := Identity(c)
			if !ok {
				abort(c, &AErr{Code: http.StatusUnauthorized, Msg: "unauthorized"})
				return
			}
			if a.MinRole != "" && !id.Role.AtLeast(a.MinRole) {
				abort(c, &AErr{Code: http.StatusForbidden, Msg: "forbidden"})
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			code := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(bindErr, &tooLarge) {
				code = http.StatusRequestEntityTooLarge
			}
			abort(c, &AErr{Code: code, Msg: bindErr.Error(), Err: bindErr})
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			abort(c, toAErr(err))
			return
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// toAErr is the single place where domain errors become statuses.
func toAErr(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailure),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrIdentityNotFound):
		code = http.StatusUnauthorized
	case errors.Is(err, domain.ErrSelfDeletion),
		errors.Is(err, domain.ErrAccessDenied):
		code = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrValidationConflict):
		code = http.StatusBadRequest
	default:
		return &AErr{Code: code, Msg: "internal error", Err: err}
	}
	return &AErr{Code: code, Msg: err.Error(), Err: err}
}

// Abort writes err as an enveloped error response.
func Abort(c *gin.Context, err error) { abort(c, toAErr(err)) }

func abort(c *gin.Context, ae *AErr) {
	if ae.Code >= http.StatusInternalServerError && ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Error()))
}
