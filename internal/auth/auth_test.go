package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test - Constructor
// Check that NewJWTManager creates a JWTManager with correct fields
func TestNewJWTManager(t *testing.T) {
	j := NewJWTManager("secret123", time.Hour)

	assert.NotNil(t, j)
	assert.Equal(t, "secret123", j.SecretKey)
	assert.Equal(t, time.Hour, j.TokenDuration)
}

// Test - Generate + Verify
// Checks full round-trip: Generate -> Verify works correctly
func TestJWTManager_GenerateAndVerify(t *testing.T) {
	j := NewJWTManager("supersecret", time.Minute)

	token, err := j.Generate("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)

	//Ensure expiry is set roughly to 1 minute in the future
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, time.Second*2)
}

// Test - Expired Token
// Ensures that Verify rejects expired tokens
func TestJWTManager_ExpiredToken(t *testing.T) {
	j := NewJWTManager("key", time.Minute)
	j.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := j.Generate("tom")
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

// Test - Invalid Secret Key
// Ensures Verify fails when using a different signing key
func TestJWTManager_InvalidSecretKey(t *testing.T) {
	j1 := NewJWTManager("key1", time.Minute)
	j2 := NewJWTManager("key2", time.Minute)

	token, err := j1.Generate("catlin")
	require.NoError(t, err)

	_, err = j2.Verify(token) //verify with different key
	assert.Error(t, err)
}

// Test - Malformed Token String
func TestJWTManager_MalformedToken(t *testing.T) {
	j := NewJWTManager("secret", time.Minute)

	_, err := j.Verify("this.is.not.a.valid.token")
	assert.Error(t, err)
}

// Tokens minted by someone else with the same key but another issuer are rejected
func TestJWTManager_ForeignIssuer(t *testing.T) {
	j := NewJWTManager("shared", time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := token.SignedString([]byte("shared"))
	require.NoError(t, err)

	_, err = j.Verify(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

// Test - Wrong Signing Method
// Checks that only HMAC tokens are accepted
func TestJWTManager_WrongSigningMethod(t *testing.T) {
	j := NewJWTManager("secret", time.Minute)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "dan", Issuer: issuer},
	})

	signed, err := token.SignedString(privateKey)
	require.NoError(t, err)

	_, err = j.Verify(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signing method")
}
