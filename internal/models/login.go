package models

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email
	// required: true
	// example: alice
	Username string `json:"username"`

	// Password
	// required: true
	// example: Passw0rd!
	Password string `json:"password"`
}

// AuthResult is returned by successful registration and login
// swagger:model AuthResult
type AuthResult struct {
	// Authenticated account
	User *Account `json:"user"`

	// Bearer token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// AccountEnvelope wraps a single account in response data
// swagger:model AccountEnvelope
type AccountEnvelope struct {
	User *Account `json:"user"`
}
