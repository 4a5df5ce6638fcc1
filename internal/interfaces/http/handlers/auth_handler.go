package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/interfaces/http/middleware"
	"sarb.backend/internal/interfaces/http/response"
	"sarb.backend/pkg/jwt"
)

type authService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.TokenResponse, error)
	Me(ctx context.Context, userID int64) (*entities.User, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login exchanges username and password for a token pair.
// POST /api/token
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	tokens, err := h.auth.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Refresh issues a new access token.
// POST /api/token/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input entities.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Me returns the signed in user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Logout revokes the presented access token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
