package models

// LoginRequest represents the incoming JSON payload for POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the outgoing JSON response
type LoginResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}
