package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futureed/backend/internal/contextkeys"
	"github.com/futureed/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestFunctionCORS_Options(t *testing.T) {
	var called bool
	rec := httptest.NewRecorder()
	FunctionCORS(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, X-Client-Info, Apikey", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestFunctionCORS_PassesThrough(t *testing.T) {
	var called bool
	rec := httptest.NewRecorder()
	FunctionCORS(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*domain.JWTClaims, error) {
	if token != "good" {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}
	return &domain.JWTClaims{Sub: "u1", Email: "a@b.com", Name: "A B"}, nil
}

func TestAuth(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(contextkeys.UserID).(string)
		w.WriteHeader(http.StatusOK)
	})
	h := Auth(fakeVerifier{})(next)

	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"bearer good", http.StatusOK},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, tc.header)
	}
	assert.Equal(t, "u1", gotID)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestLogger_CapturesStatus(t *testing.T) {
	var called bool
	rec := httptest.NewRecorder()
	Logger(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Stop()
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", extractClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", extractClientIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.7")
	assert.Equal(t, "192.0.2.7", extractClientIP(req))
}

func TestRateLimiter_StopEndsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rl := NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop()
}
