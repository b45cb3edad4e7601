package models

// Response is the envelope shared by every API response
// swagger:model Response
type Response struct {
	// Outcome of the request
	// example: true
	Success bool `json:"success"`

	// Human readable message
	// example: Sign in successful
	Message string `json:"message,omitempty"`

	// Payload
	Data any `json:"data,omitempty"`

	// Field keyed error messages
	Errors map[string]string `json:"errors,omitempty"`

	// Page position for listings
	Pagination *Pagination `json:"pagination,omitempty"`
}
