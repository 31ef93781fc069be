package service

import "github.com/mwarren/crmapi/internal/core/validation"

// ValidationError carries every violated field rule of a rejected payload.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	return "invalid input"
}
