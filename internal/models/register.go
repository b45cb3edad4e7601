package models

// RegisterRequest represents the JSON body for account registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username"`

	// Email
	// required: true
	// example: a@x.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Passw0rd!
	Password string `json:"password"`

	// Password confirmation, must equal Password
	// required: true
	// example: Passw0rd!
	ConfirmPassword string `json:"confirmPassword"`
}
