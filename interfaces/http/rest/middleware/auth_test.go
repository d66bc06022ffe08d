package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkpage-backend/pkg/auth"
)

const testSecret = "middleware-test-secret"

func signTestToken(t *testing.T, subject, username string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func echoIdentity(t *testing.T, captured *auth.UserContext) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err)
		*captured = *user
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	t.Run("valid token reaches the handler with identity", func(t *testing.T) {
		var captured auth.UserContext
		handler := Authenticate(validator, zap.NewNop())(echoIdentity(t, &captured))

		req := httptest.NewRequest("GET", "/page/me", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "sub-1", "alice", time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sub-1", captured.SubjectID)
		assert.Equal(t, "alice", captured.Username)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		handler := Authenticate(validator, zap.NewNop())(http.NotFoundHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/page/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is a 401", func(t *testing.T) {
		handler := Authenticate(validator, zap.NewNop())(http.NotFoundHandler())

		req := httptest.NewRequest("GET", "/page/me", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "sub-1", "alice", -time.Minute))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthenticateForLambda(t *testing.T) {
	t.Run("gateway headers carry the identity", func(t *testing.T) {
		var captured auth.UserContext
		handler := AuthenticateForLambda()(echoIdentity(t, &captured))

		req := httptest.NewRequest("GET", "/page/me", nil)
		req.Header.Set("X-Gateway-Authorized", "true")
		req.Header.Set("X-Subject-ID", "sub-1")
		req.Header.Set("X-Username", "alice")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sub-1", captured.SubjectID)
		assert.Equal(t, "alice", captured.Username)
	})

	t.Run("unauthorized without the gateway flag", func(t *testing.T) {
		handler := AuthenticateForLambda()(http.NotFoundHandler())

		req := httptest.NewRequest("GET", "/page/me", nil)
		req.Header.Set("X-Subject-ID", "sub-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unauthorized without a subject", func(t *testing.T) {
		handler := AuthenticateForLambda()(http.NotFoundHandler())

		req := httptest.NewRequest("GET", "/page/me", nil)
		req.Header.Set("X-Gateway-Authorized", "true")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.9:4431"
	assert.Equal(t, "10.0.0.9", getClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.5")
	assert.Equal(t, "203.0.113.5", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", getClientIP(req))
}
