package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posstock/internal/pkg/token"
)

func TestService_RoundTrip(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Hour)

	signed, err := svc.GenerateToken("user-1", "manager")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, token.Issuer, claims.Issuer)
}

func TestService_RejectsForeignSignature(t *testing.T) {
	signed, err := token.NewService("outro-segredo", time.Hour).GenerateToken("user-1", "admin")
	require.NoError(t, err)

	_, err = token.NewService("segredo-de-teste", time.Hour).ValidateToken(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestService_RejectsExpired(t *testing.T) {
	svc := token.NewService("segredo-de-teste", -time.Minute)
	signed, err := svc.GenerateToken("user-1", "cashier")
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestService_RejectsGarbage(t *testing.T) {
	_, err := token.NewService("segredo-de-teste", time.Hour).ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
