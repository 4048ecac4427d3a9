package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "secret", ExpirationHours: 1})

	token, err := j.GenerateToken("admin@shoes.test", "u-1", "ADM-001")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@shoes.test", claims.Email)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ADM-001", claims.AdminCode)
}

func TestValidate_WrongKey(t *testing.T) {
	token, err := NewJWTUtil(&JWTConfig{SigningKey: "one", ExpirationHours: 1}).GenerateToken("a@b.c", "u", "")
	require.NoError(t, err)

	_, err = NewJWTUtil(&JWTConfig{SigningKey: "two", ExpirationHours: 1}).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "secret", ExpirationHours: -1})
	token, err := j.GenerateToken("a@b.c", "u", "")
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestNilConfig(t *testing.T) {
	j := NewJWTUtil(nil)
	_, err := j.GenerateToken("a@b.c", "u", "")
	assert.Error(t, err)
	_, err = j.ValidateToken("x")
	assert.Error(t, err)
}
