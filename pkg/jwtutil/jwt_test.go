package jwtutil

import (
	"testing"
	"time"

	"employee-list/pkg/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})

	token, err := util.GenerateToken("admin", 3, "administrator")
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "administrator", claims.Role)
}

func TestValidateRejectsForeignKey(t *testing.T) {
	issuer := NewJWTUtil(&config.JWTConfig{SigningKey: "key-a", ExpirationHours: 1})
	verifier := NewJWTUtil(&config.JWTConfig{SigningKey: "key-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken("admin", 1, "administrator")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	util.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := util.GenerateToken("admin", 1, "administrator")
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestMissingConfiguration(t *testing.T) {
	util := NewJWTUtil(nil)

	_, err := util.GenerateToken("admin", 1, "administrator")
	assert.Error(t, err)
	_, err = util.ValidateToken("anything")
	assert.Error(t, err)
}
