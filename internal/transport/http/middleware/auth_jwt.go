package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
	"raluma-api/internal/transport/http/ez"
	resp "raluma-api/internal/transport/http/response"
)

// IdentityResolver turns a bearer token into the live caller.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}

// AuthJWT rejects requests without a valid bearer token. Role checks are
// left to each action.
func AuthJWT(r IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(ah, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		id, err := r.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			ez.Abort(c, err)
			return
		}
		ez.SetIdentity(c, id)
		c.Next()
	}
}
