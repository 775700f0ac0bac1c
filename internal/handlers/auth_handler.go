package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"secretGateway/internal/auth"
	"secretGateway/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues tokens for the configured admin account
type AuthHandler struct {
	JWTManager   auth.JWTGenerator
	Username     string
	PasswordHash string
}

// NewAuthHandler creates a new AuthHandler. passwordHash is a bcrypt hash.
func NewAuthHandler(jwtManager auth.JWTGenerator, username, passwordHash string) *AuthHandler {
	return &AuthHandler{
		JWTManager:   jwtManager,
		Username:     username,
		PasswordHash: passwordHash,
	}
}

// Login validates credentials and returns a JWT token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	// always run bcrypt so unknown usernames cost the same as wrong passwords
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		zerolog.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("login rejected")
		writeJSON(w, http.StatusUnauthorized, models.LoginResponse{Message: "Invalid username or password"})
		return
	}

	token, err := h.JWTManager.Generate(req.Username)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to sign token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:   token,
		Message: "Login successful",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
