package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-offers/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	secret := "testsecret"
	cfg := config.AuthConfig{Enabled: true, JWTSecret: secret}

	valid := signToken(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	noExpiry := signToken(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: "ops"})
	wrongSecret := signToken(t, jwt.SigningMethodHS256, "other", jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name   string
		cfg    config.AuthConfig
		header string
		status int
	}{
		{"disabled lets everything through", config.AuthConfig{}, "", http.StatusOK},
		{"missing header", cfg, "", http.StatusUnauthorized},
		{"wrong scheme", cfg, "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", cfg, "Bearer invalidtoken", http.StatusUnauthorized},
		{"wrong secret", cfg, "Bearer " + wrongSecret, http.StatusUnauthorized},
		{"expired", cfg, "Bearer " + expired, http.StatusUnauthorized},
		{"missing expiry", cfg, "Bearer " + noExpiry, http.StatusUnauthorized},
		{"valid token", cfg, "Bearer " + valid, http.StatusOK},
		{"scheme is case insensitive", cfg, "bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = Subject(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/customers/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.cfg, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":{"message":"Unauthorized"}}`, rec.Body.String())
			}
			if tt.status == http.StatusOK && tt.cfg.Enabled {
				assert.Equal(t, "ops", subject)
			}
		})
	}
}
