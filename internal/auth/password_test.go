package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHasher_Deterministic(t *testing.T) {
	hasher := NewPasswordHasher("server-secret")

	first := hasher.Hash("password123")
	second := hasher.Hash("password123")

	assert.Equal(t, first, second)
	assert.NotEqual(t, "password123", first)
	assert.NotEmpty(t, first)
}

func TestPasswordHasher_SecretSensitivity(t *testing.T) {
	a := NewPasswordHasher("secret-a")
	b := NewPasswordHasher("secret-b")

	assert.NotEqual(t, a.Hash("password123"), b.Hash("password123"))
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher := NewPasswordHasher("server-secret")
	stored := hasher.Hash("password123")

	assert.True(t, hasher.Verify("password123", stored))
	assert.False(t, hasher.Verify("password124", stored))
	assert.False(t, hasher.Verify("", stored))
}
