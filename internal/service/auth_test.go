package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/futureed/backend/internal/domain"
	"github.com/futureed/backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth() *AuthService {
	svc := NewAuthService("test-secret", repository.NewMemoryUserRepository())
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestSignup(t *testing.T) {
	svc := newAuth()

	resp, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email:    " A@B.com ",
		Password: "x",
		FullName: "A B",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@b.com", resp.User.Email)
	assert.Equal(t, "A B", resp.User.FullName)
	assert.NotEmpty(t, resp.User.ID)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Sub)
	assert.Equal(t, "A B", claims.Name)
}

func TestSignup_Duplicate(t *testing.T) {
	svc := newAuth()
	req := domain.SignupRequest{Email: "a@b.com", Password: "x", FullName: "A B"}

	first := req
	_, err := svc.Signup(context.Background(), &first)
	require.NoError(t, err)

	again := req
	again.Email = "A@b.com"
	_, err = svc.Signup(context.Background(), &again)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.EqualError(t, err, "email already registered")
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.SignupRequest
		msg  string
	}{
		{"missing name", domain.SignupRequest{Email: "a@b.com", Password: "x"}, "full name is required"},
		{"blank name", domain.SignupRequest{Email: "a@b.com", Password: "x", FullName: "   "}, "full name is required"},
		{"bad email", domain.SignupRequest{Email: "nope", Password: "x", FullName: "A"}, "email must be a valid email address"},
		{"missing password", domain.SignupRequest{Email: "a@b.com", FullName: "A"}, "password is required"},
		{"long name", domain.SignupRequest{Email: "a@b.com", Password: "x", FullName: strings.Repeat("a", 121)}, "full name must be at most 120 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAuth()
			req := tc.req
			_, err := svc.Signup(context.Background(), &req)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
			assert.EqualError(t, err, tc.msg)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newAuth()
	_, err := svc.Signup(context.Background(), &domain.SignupRequest{Email: "a@b.com", Password: "secret", FullName: "A B"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "A@B.COM", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "A B", resp.User.FullName)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newAuth()
	_, err := svc.Signup(context.Background(), &domain.SignupRequest{Email: "a@b.com", Password: "secret", FullName: "A B"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Email: "other@b.com", Password: "secret"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.EqualError(t, err, "invalid credentials")
}

func TestLogin_Validation(t *testing.T) {
	svc := newAuth()
	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestVerifyToken_Rejects(t *testing.T) {
	svc := newAuth()
	resp, err := svc.Signup(context.Background(), &domain.SignupRequest{Email: "a@b.com", Password: "x", FullName: "A B"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewAuthService("other-secret", repository.NewMemoryUserRepository())
		_, err := other.VerifyToken(resp.Token)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(tokenTTL + time.Hour) }
		defer func() { svc.now = time.Now }()
		_, err := svc.VerifyToken(resp.Token)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": resp.User.ID})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.VerifyToken(signed)
		assert.Error(t, err)
	})
}

func TestGetUserByID(t *testing.T) {
	svc := newAuth()
	resp, err := svc.Signup(context.Background(), &domain.SignupRequest{Email: "a@b.com", Password: "x", FullName: "A B"})
	require.NoError(t, err)

	u, err := svc.GetUserByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "A B", u.FullName)

	_, err = svc.GetUserByID(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
