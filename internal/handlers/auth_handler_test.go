package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"secretGateway/internal/handlers/mocks"
	"secretGateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthHandler_Login(t *testing.T) {
	hash := mustHash(t, "correct horse")

	tests := []struct {
		name           string
		body           string
		generateErr    error
		expectedStatus int
		expectToken    bool
	}{
		{
			name:           "success",
			body:           `{"username":"admin","password":"correct horse"}`,
			expectedStatus: http.StatusOK,
			expectToken:    true,
		},
		{
			name:           "wrong password",
			body:           `{"username":"admin","password":"battery staple"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			body:           `{"username":"root","password":"correct horse"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           `{"username":"admin"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad json",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "signing fails",
			body:           `{"username":"admin","password":"correct horse"}`,
			generateErr:    errors.New("no key"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwt := &mocks.MockJWTManager{Token: "tok-1", GenerateErr: tt.generateErr}
			handler := NewAuthHandler(jwt, "admin", hash)

			rec := httptest.NewRecorder()
			handler.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.expectedStatus, rec.Code, "body: %s", rec.Body.String())
			if !tt.expectToken {
				return
			}

			var resp models.LoginResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "tok-1", resp.Token)
			assert.Equal(t, "admin", jwt.GeneratedFor)
		})
	}
}
