package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futureed/backend/internal/domain"
	"github.com/futureed/backend/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued bearer token stays valid.
const tokenTTL = 7 * 24 * time.Hour

// AuthService handles signup, login and JWT verification.
type AuthService struct {
	jwtSecret  string
	users      repository.UserStore
	validate   *validator.Validate
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string, users repository.UserStore) *AuthService {
	return &AuthService{
		jwtSecret:  jwtSecret,
		users:      users,
		validate:   validator.New(),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Signup creates an account and logs it in.
func (s *AuthService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrBadRequest(validationMessage(err))
	}

	exists, err := s.users.Exists(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInternal("failed to check user", err)
	}
	if exists {
		return nil, domain.ErrConflict("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.ErrInternal("failed to hash password", err)
	}

	now := s.now()
	user := &domain.User{
		ID:        domain.NewUserID(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		FullName:  req.FullName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.ErrConflict("email already registered")
		}
		return nil, domain.ErrInternal("failed to create user", err)
	}

	return s.issue(user)
}

// Login validates credentials and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrBadRequest(validationMessage(err))
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	// Compare bcrypt hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*domain.AuthResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.FullName,
		"exp":   now.Add(tokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, domain.ErrInternal("failed to sign token", err)
	}

	return &domain.AuthResponse{
		Token: signed,
		User:  user.ToAuthUser(),
	}, nil
}

// VerifyToken validates a JWT token and returns the claims.
func (s *AuthService) VerifyToken(tokenStr string) (*domain.JWTClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized("invalid token claims")
	}

	return &domain.JWTClaims{
		Sub:   getClaimString(claims, "sub"),
		Email: getClaimString(claims, "email"),
		Name:  getClaimString(claims, "name"),
	}, nil
}

func getClaimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// GetUserByID returns a user profile by ID (for /api/auth/me).
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.AuthUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user not found")
	}
	u := user.ToAuthUser()
	return &u, nil
}

// validationMessage turns validator errors into a message fit for end users.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func fieldLabel(name string) string {
	switch name {
	case "FullName":
		return "full name"
	default:
		return strings.ToLower(name)
	}
}
