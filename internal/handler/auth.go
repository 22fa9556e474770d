package handler

import (
	"net/http"

	"github.com/futureed/backend/internal/contextkeys"
	"github.com/futureed/backend/internal/domain"
	"github.com/futureed/backend/internal/service"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/auth/login and POST /functions/v1/auth-login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		AuthError(w, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		AuthError(w, err)
		return
	}

	JSON(w, http.StatusOK, resp)
}

// Signup handles POST /api/auth/signup and POST /functions/v1/auth-signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		AuthError(w, err)
		return
	}

	resp, err := h.auth.Signup(r.Context(), &req)
	if err != nil {
		AuthError(w, err)
		return
	}

	JSON(w, http.StatusCreated, resp)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextkeys.UserID).(string)
	if !ok || userID == "" {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the client
// discarding its copy is what ends the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}
