package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/otp"
)

type stubVerifier map[string]int64

func (s stubVerifier) Verify(token string) (int64, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid or expired token")
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserID(r.Context()); !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthenticate(t *testing.T) {
	h := Authenticate(stubVerifier{"good": 7})(http.HandlerFunc(echoUser))

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
		{"header", "Bearer good", "", http.StatusNoContent},
		{"query for websockets", "", "?token=good", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/wallet"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

type stubOTP struct{ err error }

func (s stubOTP) Verify(context.Context, int64, string, string) error { return s.err }

func TestRequireOTP(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	authed := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/transfers/wallet", nil)
		return req.WithContext(WithUserID(req.Context(), 7))
	}

	cases := []struct {
		name    string
		enabled bool
		err     error
		want    int
	}{
		{"disabled", false, otp.ErrMissing, http.StatusNoContent},
		{"valid", true, nil, http.StatusNoContent},
		{"missing", true, otp.ErrMissing, http.StatusForbidden},
		{"wrong", true, otp.ErrInvalidCode, http.StatusForbidden},
		{"store down", true, errors.New("redis: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireOTP(tc.enabled, stubOTP{tc.err}, zap.NewNop())(ok).ServeHTTP(rec, authed())
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	reached := false
	h := CORS([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/transfers/bank", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, "+HeaderOTPCode)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.False(t, reached, "preflight stops before the handler")
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(HeaderOTPCode))

	req = httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowAll(t *testing.T) {
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLoggingRecordsStatus(t *testing.T) {
	h := Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
