package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/futureed/backend/internal/handler"
	"github.com/futureed/backend/internal/repository"
	"github.com/futureed/backend/internal/router"
	"github.com/futureed/backend/internal/service"
	"github.com/futureed/backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	checkout := service.NewCheckoutService(payment.NewMockGateway(), service.CheckoutOptions{
		SecretKey:      "mock",
		FallbackOrigin: "http://localhost:5173",
		Timeout:        time.Second,
	})
	auth := service.NewAuthService("cli-secret", repository.NewMemoryUserRepository())
	srv := httptest.NewServer(router.New(router.Deps{
		Payment:  handler.NewPaymentHandler(checkout, ""),
		Auth:     handler.NewAuthHandler(auth),
		Health:   handler.NewHealthHandler(nil, true),
		Verifier: auth,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).RunContext(context.Background(), append([]string{"academyctl"}, args...))
	return out.String(), err
}

func TestSessionLifecycle(t *testing.T) {
	srv := newBackend(t)
	session := filepath.Join(t.TempDir(), "session.json")
	base := []string{"--url", srv.URL, "--session", session}

	out, err := run(t, append(base, "whoami")...)
	require.NoError(t, err)
	assert.Equal(t, "Not logged in\n", out)

	out, err = run(t, append(base, "signup", "--email", "a@b.com", "--password", "x", "--name", "A B")...)
	require.NoError(t, err)
	assert.Equal(t, "Welcome, A B (a@b.com)\n", out)

	out, err = run(t, append(base, "whoami")...)
	require.NoError(t, err)
	assert.Contains(t, out, "A B <a@b.com>")

	out, err = run(t, append(base, "logout")...)
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	out, err = run(t, append(base, "login", "--email", "a@b.com", "--password", "x")...)
	require.NoError(t, err)
	assert.Equal(t, "Logged in as A B (a@b.com)\n", out)
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	srv := newBackend(t)
	session := filepath.Join(t.TempDir(), "session.json")

	_, err := run(t, "--url", srv.URL, "--session", session, "login", "--email", "x@y.com", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials (HTTP 401)", err.Error())
}

func TestPay(t *testing.T) {
	srv := newBackend(t)

	out, err := run(t, "--url", srv.URL, "--anon-key", "anon", "pay")
	require.NoError(t, err)
	assert.Regexp(t, `^cs_test_[0-9a-f]{32}\n$`, out)
}
