package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/middleware"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/query"
	"github.com/vaultbank/api/internal/repository"
)

// UserCommander defines the write-side operations used by AuthHandler.
type UserCommander interface {
	Signup(ctx context.Context, cmd cqrs.SignupCommand) (*models.User, *models.Profile, error)
	ResetPassword(ctx context.Context, cmd cqrs.ResetPasswordCommand) (*models.User, error)
}

// AuthQuerier defines the credential and reset-link operations used by
// AuthHandler.
type AuthQuerier interface {
	Login(ctx context.Context, cmd cqrs.LoginCommand) (*query.LoginResult, error)
	ForgotPassword(ctx context.Context, cmd cqrs.ForgotPasswordCommand) error
}

type AuthHandler struct {
	commands UserCommander
	queries  AuthQuerier
}

type SignupRequest struct {
	UserName      string `json:"userName" validate:"required"`
	UserEmail     string `json:"userEmail" validate:"required,email"`
	UserPassword  string `json:"userPassword" validate:"required,min=10"`
	ProfileType   string `json:"profileType" validate:"required"`
	ProfileNumber string `json:"profileNumber" validate:"required"`
	Address       string `json:"address" validate:"required"`
}

type LoginRequest struct {
	UserEmail    string `json:"userEmail" validate:"required,email"`
	UserPassword string `json:"userPassword" validate:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=10"`
}

func NewAuthHandler(commands UserCommander, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, profile, err := h.commands.Signup(c.Request.Context(), cqrs.SignupCommand{
		Name:          req.UserName,
		Email:         req.UserEmail,
		Password:      req.UserPassword,
		ProfileType:   req.ProfileType,
		ProfileNumber: req.ProfileNumber,
		Address:       req.Address,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Email is already registered")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"newUser":    user,
		"newProfile": profile,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.UserEmail,
		Password: req.UserPassword,
	})
	if err != nil {
		if errors.Is(err, query.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout is a no-op server side. Tokens are stateless; the client discards
// its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) WhoAmI(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": claims.UserID,
		"email":  claims.Email,
	})
}

// ForgotPassword sends a reset link for the authenticated user. The target
// email is taken from the token claims, not the request body.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.queries.ForgotPassword(c.Request.Context(), cqrs.ForgotPasswordCommand{Email: claims.Email})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to send reset email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.ResetPassword(c.Request.Context(), cqrs.ResetPasswordCommand{
		UserID:      claims.UserID,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
		"userId":  user.ID,
	})
}
