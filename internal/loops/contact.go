package loops

// contactRequest is the wire format of the Loops.so create-contact endpoint.
type contactRequest struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Source     string `json:"source,omitempty"`
	Subscribed bool   `json:"subscribed"`
	UserGroup  string `json:"userGroup,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
