package weir

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured failure that renders as a response. Routing
// failures, extraction rejections, and handler errors all terminate in an
// Error (or wrap one); nothing in the dispatch core escapes as a fault.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Is matches errors by code, so derived copies created with WithMessage or
// WithCause still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of the error with a custom message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

// WithCause returns a copy of the error wrapping an underlying cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

// Response renders the error as a JSON response with its status code.
func (e *Error) Response() *Response {
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return JSONResponse(e).WithStatus(status)
}

// Routing and extraction rejections. Client-caused failures are 400-class;
// missing state and a consumed body are server misconfigurations and render
// as 500.
var (
	ErrNotFound         = &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: http.StatusText(http.StatusNotFound)}
	ErrMethodNotAllowed = &Error{Status: http.StatusMethodNotAllowed, Code: "METHOD_NOT_ALLOWED", Message: http.StatusText(http.StatusMethodNotAllowed)}

	ErrMissingParam          = &Error{Status: http.StatusBadRequest, Code: "MISSING_PATH_PARAM", Message: "missing path parameter"}
	ErrInvalidParam          = &Error{Status: http.StatusBadRequest, Code: "INVALID_PATH_PARAM", Message: "invalid path parameter"}
	ErrInvalidQuery          = &Error{Status: http.StatusBadRequest, Code: "INVALID_QUERY", Message: "invalid query string"}
	ErrUnexpectedContentType = &Error{Status: http.StatusUnsupportedMediaType, Code: "UNEXPECTED_CONTENT_TYPE", Message: "unexpected content type"}
	ErrMalformedBody         = &Error{Status: http.StatusBadRequest, Code: "MALFORMED_BODY", Message: "malformed request body"}

	ErrBodyConsumed = &Error{Status: http.StatusInternalServerError, Code: "BODY_CONSUMED", Message: "request body already consumed"}
	ErrMissingState = &Error{Status: http.StatusInternalServerError, Code: "MISSING_STATE", Message: "application state not provided"}

	ErrInternal = &Error{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: http.StatusText(http.StatusInternalServerError)}
)

// Configuration errors. These surface as panics at registration time, never
// during request dispatch.
var (
	ErrInvalidPattern     = errors.New("routing pattern must begin with '/'")
	ErrInvalidMethod      = errors.New("invalid http method")
	ErrInvalidMountPrefix = errors.New("mount prefix must begin and end with '/'")
	ErrNilRouter          = errors.New("cannot mount nil router")
	ErrNilEndpoint        = errors.New("cannot register nil endpoint")
	ErrWildcardPosition   = errors.New("wildcard must be the final path segment")
	ErrMissingParamName   = errors.New("path parameter must be named")
	ErrDuplicateParam     = errors.New("routing pattern contains duplicate parameter name")
)

// ErrorResponse converts any error into a response. Structured *Error
// values render with their own status and code; everything else becomes a
// generic 500 so application faults never leak detail to clients.
func ErrorResponse(err error) *Response {
	var e *Error
	if errors.As(err, &e) {
		return e.Response()
	}
	return ErrInternal.Response()
}
