package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detailer is implemented by structured errors that carry data the caller
// needs to adjust the request (e.g. the conflicting instants).
type Detailer interface {
	Details() any
}

type detailedHTTPError struct {
	HTTPError
	Retryable bool `json:"retryable,omitempty"`
	Details   any  `json:"details,omitempty"`
}

var statusByCode = map[string]int{
	CodeInvalidInput:             http.StatusBadRequest,
	CodeInvalidPattern:           http.StatusBadRequest,
	CodeUnauthorized:             http.StatusForbidden,
	CodeNotFound:                 http.StatusNotFound,
	CodeClientNotFound:           http.StatusNotFound,
	CodeInsufficientCredit:       http.StatusUnprocessableEntity,
	CodeSlotConflict:             http.StatusConflict,
	CodeConflictingState:         http.StatusConflict,
	CodeConflict:                 http.StatusConflict,
	CodeAlreadyFinalized:         http.StatusConflict,
	CodeInvalidTransition:        http.StatusUnprocessableEntity,
	CodeLateConfirmationRequired: http.StatusPreconditionRequired,
	CodeBusy:                     http.StatusServiceUnavailable,
}

// StatusFor maps a business code to its HTTP status.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Respond writes err as a JSON error body. Unknown errors become a 500
// without leaking their message.
func Respond(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	body := detailedHTTPError{
		HTTPError: HTTPError{Code: code, Message: err.Error()},
		Retryable: Retryable(err),
	}

	var d Detailer
	if errors.As(err, &d) {
		body.Details = d.Details()
	}

	c.JSON(StatusFor(code), body)
}
