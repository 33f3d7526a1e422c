package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// AuthHandler handles signup and token requests
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginRequest represents the token request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh request payload
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPairResponse represents the response with both tokens
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenResponse represents the response with a fresh access token
type AccessTokenResponse struct {
	Access string `json:"access"`
}

// Signup handles user registration
// @Summary     Register a new user
// @Description Create a user account. No token is issued; call /api/token/ afterwards.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignupRequest true "User registration data"
// @Success     201 {object} MessageResponse "User created"
// @Failure     400 {object} ErrorResponse "Missing fields or username already exists"
// @Router      /signup/ [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username and password are required."))
		return
	}

	if _, err := h.userService.CreateUser(req.Username, req.Email, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!"})
}

// Login handles the access/refresh token exchange
// @Summary     Obtain token pair
// @Description Exchange username and password for an access and refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User credentials"
// @Success     200 {object} TokenPairResponse "Token pair"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /token/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if !h.userService.VerifyPassword(user, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	access, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	refresh, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// Refresh exchanges a valid refresh token for a new access token
// @Summary     Refresh access token
// @Description Exchange a valid refresh token for a new access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AccessTokenResponse "New access token"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router      /token/refresh/ [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.Refresh)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	// The user must still exist for the refresh to succeed
	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	access, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
