package errors

import "net/http"

// Machine-readable error codes, kept stable so clients can branch on them.
const (
	CodeUserNotFound       = "1001"
	CodeUserAlreadyExists  = "1002"
	CodeInvalidCredentials = "1003"

	CodeUnprocessableEntity = "201"
	CodeInternal            = "301"
	CodeResourceNotFound    = "404"
	CodeUnauthorized        = "401"
	CodeBadRequest          = "BAD_REQUEST"

	CodeReservationConflict    = "2001"
	CodeAlreadyCanceled        = "2002"
	CodeInvalidStatusForAction = "2003"
)

// HTTPError is an error with an HTTP status, a stable error code and an
// optional details payload. Handlers raise these; a single responder
// translates them to JSON.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message}
}

func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, CodeBadRequest, message)
}

func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, CodeResourceNotFound, message)
}

func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, message)
}

// Conflict is the overlapping-interval error, distinct from generic
// validation so clients can branch on it.
func Conflict(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, CodeReservationConflict, message)
}

func AlreadyCanceled(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, CodeAlreadyCanceled, message)
}

func InvalidStatusForAction(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, CodeInvalidStatusForAction, message)
}

// Unprocessable carries schema-validation issues as details.
func Unprocessable(message string, details any) *HTTPError {
	return &HTTPError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeUnprocessableEntity,
		Message: message,
		Details: details,
	}
}

func Internal(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, CodeInternal, message)
}
