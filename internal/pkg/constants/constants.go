package constants

import "net/http"

const (
	CookieKeySecretToken = "secret_token"

	CtxKeyRequestID = "request_id"

	ViperSecretKey    = "admin_secret"
	ViperDatabaseURL  = "database_url"
	ViperServerAddr   = "server_addr"
	ViperCORSOrigin   = "cors_origin"
	ViperGeometryPath = "geometry_path"
	ViperPolicySource = "policy_source_url"
	ViperConfigPath   = "config_path"
	ViperLogLevel     = "log_level"
)

type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Code() int {
	return e.code
}

func (e *CodedError) Error() string {
	return e.msg
}

var (
	ErrDBNotFound   = NewCodedError(http.StatusNotFound, "not found")
	ErrUnauthorized = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrBadRequest   = NewCodedError(http.StatusBadRequest, "bad request")
)
