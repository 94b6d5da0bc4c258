package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appidentity "github.com/markethub/backend/internal/application/identity"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	AsPartner   bool   `json:"as_partner"`
	CompanyName string `json:"company_name" binding:"max=200"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for session renewal
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the payload for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest is the payload for profile edits
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Phone string `json:"phone" binding:"max=30"`
}

// UserResponse is the public representation of a user account
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse bundles the account with a fresh token pair
type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// AuthHandler handles registration, login and account endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account, optionally with a partner profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, tokens, err := h.authService.Register(c.Request.Context(), appidentity.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Phone:       req.Phone,
		AsPartner:   req.AsPartner,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, AuthResponse{User: toUserResponse(user), Tokens: tokens})
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, AuthResponse{User: toUserResponse(user), Tokens: tokens})
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Logout revokes the current access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GetProfile returns the authenticated user's account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

// UpdateProfile updates the authenticated user's name and phone.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Phone)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

// ChangePassword verifies the current password and sets a new one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
