package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	subject string
}

func (c testClaims) GetSubject() (string, error) {
	return c.subject, nil
}

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator map[string]string

func (v testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v[tokenString]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return testClaims{subject: subject}, nil
}

func guarded(t *testing.T, called *bool, subject *string) http.Handler {
	t.Helper()
	validator := testTokenValidator{"good-token": "cli"}
	return AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		s, err := GetSubject(r)
		require.NoError(t, err)
		*subject = s
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		target string
		status int
	}{
		{name: "valid bearer", header: "Bearer good-token", target: "/api/crawl", status: http.StatusNoContent},
		{name: "case-insensitive scheme", header: "bearer good-token", target: "/api/crawl", status: http.StatusNoContent},
		{name: "query token", target: "/api/crawl/stream?access_token=good-token", status: http.StatusNoContent},
		{name: "missing", target: "/api/crawl", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", target: "/api/crawl", status: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer good-token extra", target: "/api/crawl", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad-token", target: "/api/crawl", status: http.StatusUnauthorized},
		{name: "header wins over query", header: "Bearer bad-token", target: "/api/crawl?access_token=good-token", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var subject string
			handler := guarded(t, &called, &subject)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.False(t, called)
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			} else {
				assert.True(t, called)
				assert.Equal(t, "cli", subject)
			}
		})
	}
}

func TestGetSubject_Missing(t *testing.T) {
	_, err := GetSubject(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}
