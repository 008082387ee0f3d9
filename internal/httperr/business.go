package httperr

import "errors"

// BusinessError is a comparable sentinel. Wrap it with fmt.Errorf("%w: ...")
// to add context and match it with errors.Is.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the business code carried by err, or "" for
// infrastructure errors.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Retryable reports whether the same request may succeed when sent again.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeBusy, CodeConflict:
		return true
	}
	return false
}
