package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID    string
	err       error
	lastToken string
}

func (f *fakeTokenVerifier) Verify(token string) (string, error) {
	f.lastToken = token
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func TestIdentify(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name          string
		authHeader    string
		verifier      *fakeTokenVerifier
		wantContextID string
		wantVerified  string
	}{
		{
			name:          "valid token sets context",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{userID: "user-123"},
			wantContextID: "user-123",
			wantVerified:  "valid-token",
		},
		{
			name:       "missing authorization header stays anonymous",
			authHeader: "",
			verifier:   &fakeTokenVerifier{userID: "user-123"},
		},
		{
			name:       "non bearer scheme is ignored",
			authHeader: "Basic abc",
			verifier:   &fakeTokenVerifier{userID: "user-123"},
		},
		{
			name:       "empty token after Bearer",
			authHeader: "Bearer ",
			verifier:   &fakeTokenVerifier{userID: "user-123"},
		},
		{
			name:         "verifier error stays anonymous",
			authHeader:   "Bearer bad-token",
			verifier:     &fakeTokenVerifier{err: errors.New("expired")},
			wantVerified: "bad-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var capturedUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				capturedUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := Identify(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodPost, "http://test/exec", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.True(t, nextCalled, "next handler called")
			assert.Equal(t, tt.wantContextID, capturedUserID)
			assert.Equal(t, tt.wantVerified, tt.verifier.lastToken)
		})
	}
}
