package models

// CreatePostRequest represents the JSON body for creating a post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Title, 3 to 200 characters
	// required: true
	// example: Hello world
	Title string `json:"title"`

	// Summary, 10 to 500 characters
	// required: true
	// example: A short first post
	Description string `json:"description"`

	// Body, at least 50 characters
	// required: true
	Content string `json:"content"`
}

// UpdatePostRequest represents the JSON body for a partial post update.
// Omitted fields are left untouched.
// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
}

// Patch converts the request into a PostPatch.
func (r UpdatePostRequest) Patch() PostPatch {
	return PostPatch{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
	}
}
