package response

// Codes mirror the HTTP status of the response; 0 is success.
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeTooLarge        = 413
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeUnavailable     = 503
	CodeTimeout         = 504
)

var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeTooLarge:        "Request Entity Too Large",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeUnavailable:     "Service Unavailable",
	CodeTimeout:         "Gateway Timeout",
}
