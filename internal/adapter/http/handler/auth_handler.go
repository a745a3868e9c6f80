package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
	}
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo represents user information
type UserInfo struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Login handles user login (simplified - no password hashing for demo)
// In production, this would validate against a user database with hashed passwords
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	// DEMO ONLY: Hardcoded users for testing
	// In production, validate against database with bcrypt password hashing
	var user *domain.User
	switch req.Username {
	case "admin":
		if req.Password != "admin123" { // DEMO ONLY - never hardcode passwords!
			writeError(w, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		user = &domain.User{
			ID:       "user-admin-1",
			Username: "admin",
			Name:     "Admin User",
			Role:     domain.RoleAdmin,
			Active:   true,
		}
	case "user":
		if req.Password != "user123" {
			writeError(w, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		user = &domain.User{
			ID:       "user-viewer-1",
			Username: "user",
			Name:     "Regular User",
			Role:     domain.RoleViewer,
			Active:   true,
		}
	default:
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	response := LoginResponse{
		Token: token,
		User: UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// GetCurrentUser returns the current authenticated user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}
