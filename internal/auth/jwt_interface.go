package auth

// JWT is what the router needs from a token manager: it signs at /login and verifies on protected routes
type JWT interface {
	JWTGenerator
	Verify(token string) (*Claims, error)
}
