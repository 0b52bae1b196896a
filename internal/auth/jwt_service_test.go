package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "user@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret")

	claims := &Claims{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateToken(uuid.New(), "user@example.com", "user")
	require.NoError(t, err)

	// Flip the last byte of the signature.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = service.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongKey(t *testing.T) {
	service := NewJWTService("test-secret")
	other := NewJWTService("other-secret")

	token, err := other.GenerateToken(uuid.New(), "user@example.com", "admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	service := NewJWTService("test-secret")

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
