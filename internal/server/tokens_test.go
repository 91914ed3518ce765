package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/config"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := newTestTokens(t)
	fixed := time.Now().Truncate(time.Second)
	tokens.now = func() time.Time { return fixed }

	token, expiresAt, err := tokens.GenerateToken("cli")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour), expiresAt)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, ScopeCrawl, claims.Scope)
	assert.NotEmpty(t, claims.ID)

	subject, err := tokens.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	got, err := subject.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "cli", got)
}

func TestTokenService_EmptySubject(t *testing.T) {
	_, _, err := newTestTokens(t).GenerateToken("")
	assert.Error(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	tokens := newTestTokens(t)
	issued := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return issued }
	token, _, err := tokens.GenerateToken("cli")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestTokenService_Rejects(t *testing.T) {
	tokens := newTestTokens(t)

	otherCfg, err := config.NewJWTConfig("a-different-secret-value", time.Hour)
	require.NoError(t, err)
	foreign, _, err := NewTokenService(otherCfg).GenerateToken("cli")
	require.NoError(t, err)

	sign := func(claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokens.config.Secret))
		require.NoError(t, err)
		return s
	}
	now := time.Now()
	wrongScope := sign(&Claims{
		Scope: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "cli",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	wrongIssuer := sign(&Claims{
		Scope: ScopeCrawl,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "cli",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Scope: ScopeCrawl}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty", token: "", want: "empty"},
		{name: "garbage", token: "not.a.token", want: "malformed"},
		{name: "wrong secret", token: foreign, want: "signature"},
		{name: "wrong scope", token: wrongScope, want: "scope"},
		{name: "wrong issuer", token: wrongIssuer, want: "failed to parse"},
		{name: "alg none", token: unsigned, want: "signature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
