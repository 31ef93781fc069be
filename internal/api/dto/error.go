package dto

// MessageResponse is the body of not-found, conflict and internal errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse maps each violated field to its message.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
