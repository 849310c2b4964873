package types

import "fmt"

const (
	ErrCodeValidation  string = "VALIDATION_ERROR"
	ErrCodeUpstream    string = "UPSTREAM_ERROR"
	ErrCodeMalformed   string = "MALFORMED_RESPONSE"
	ErrCodeRateLimited string = "RATE_LIMITED"
	ErrCodeInternal    string = "INTERNAL_ERROR"
)

// DomainError tags a failure with the stage category it came from.
// Callers at the HTTP edge collapse it into a generic message; the code is for logs.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewDomainError(code, msg string, cause error) *DomainError {
	return &DomainError{Code: code, Message: msg, Cause: cause}
}
