package model

import "errors"

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrMalformedID  = errors.New("malformatted id")
)

// Validation failure reasons.
const (
	ReasonMissing        = "missing"
	ReasonTooShort       = "too_short"
	ReasonServerAssigned = "server_assigned"
	ReasonMalformed      = "malformed"
)

// ValidationError reports client supplied data that violates a field rule.
type ValidationError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
