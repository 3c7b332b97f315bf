package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token := CreateToken(Payload{UserID: 7, RoleID: 1})
	require.NotEmpty(t, token)

	claims, valid := ParseToken(token)
	require.True(t, valid)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, 1, claims.RoleID)
	require.Equal(t, "club-portal-system", claims.Issuer)
}

func TestParseTokenTampered(t *testing.T) {
	token := CreateToken(Payload{UserID: 7})
	_, valid := ParseToken(token + "x")
	require.False(t, valid)

	_, valid = ParseToken("not-a-token")
	require.False(t, valid)
}
