package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestNewIDRoundTrip(t *testing.T) {
	id := NewID()
	assert.True(t, IsID(id))
	assert.Equal(t, id, FromGUID(GUID(id)))
	assert.NotContains(t, GUID(id), Prefix)
}

func TestIsIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "session_", "session_not-a-guid", "abc", "guest_0123"} {
		assert.False(t, IsID(id), id)
	}
}

func TestIsTokenLive(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	live := signed(t, jwt.MapClaims{"user_id": "u1", "exp": now.Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"user_id": "u1", "exp": now.Add(-time.Minute).Unix()})
	noExp := signed(t, jwt.MapClaims{"user_id": "u1"})

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"unexpired", live, true},
		{"bearer prefix", "Bearer " + live, true},
		{"expired", expired, false},
		{"missing exp", noExp, false},
		{"garbage", "not.a.jwt", false},
		{"empty", "", false},
		{"two segments", "abc.def", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTokenLive(tt.token, now))
		})
	}
}

func TestTokenExpiryIgnoresSignature(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).
		SignedString([]byte("some other key"))
	require.NoError(t, err)

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}
