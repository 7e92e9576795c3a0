package auth

import (
	"errors"
	"net/http"

	"eventhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// RegisterRoutes mounts the auth group. attachUser lets /me resolve an
// identity set by middleware before falling back to the cookie itself;
// the limiters throttle the credential-guessing surfaces.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, attachUser, loginLimiter, resetLimiter gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", loginLimiter, h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", attachUser, h.Me)
		authGroup.POST("/request-reset", resetLimiter, h.RequestReset)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

// Signup creates an account and opens the first session.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password required")
		return
	}

	user, pair, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email already in use")
			return
		}
		zap.L().Error("signup failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SIGNUP_FAILED", "Failed to create user")
		return
	}

	h.cookies.setSession(c, pair.AccessToken, pair.RefreshToken)
	response.Success(c, http.StatusCreated, gin.H{
		"message": "User created",
		"user":    user.Public(),
	})
}

// Login authenticates and opens an additional session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password required")
		return
	}

	user, pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		zap.L().Error("login failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.cookies.setSession(c, pair.AccessToken, pair.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged in",
		"user":    user.Public(),
	})
}

// Refresh exchanges the refresh cookie for a fresh access cookie.
func (h *Handler) Refresh(c *gin.Context) {
	refreshRaw, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshRaw == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "No refresh token")
		return
	}

	access, err := h.service.Refresh(c.Request.Context(), refreshRaw)
	if err != nil {
		if !errors.Is(err, ErrInvalidRefreshToken) {
			zap.L().Error("refresh failed", zap.Error(err))
		}
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid refresh token")
		return
	}

	h.cookies.setAccess(c, access)
	response.Success(c, http.StatusOK, gin.H{"message": "Token refreshed"})
}

// Logout always succeeds from the caller's perspective: the cookies are
// cleared even when the refresh token no longer decodes.
func (h *Handler) Logout(c *gin.Context) {
	if refreshRaw, err := c.Cookie(RefreshCookieName); err == nil && refreshRaw != "" {
		if err := h.service.Logout(c.Request.Context(), refreshRaw); err != nil {
			zap.L().Warn("logout revocation failed", zap.Error(err))
		}
	}

	h.cookies.clearSession(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the current user, from the middleware-attached identity or
// directly from the access cookie.
func (h *Handler) Me(c *gin.Context) {
	if userID := c.GetInt64("user_id"); userID != 0 {
		user, err := h.service.CurrentUser(c.Request.Context(), userID)
		if err == nil {
			response.Success(c, http.StatusOK, gin.H{"user": user.Public()})
			return
		}
	}

	accessRaw, err := c.Cookie(AccessCookieName)
	if err != nil || accessRaw == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	user, err := h.service.ResolveAccessToken(c.Request.Context(), accessRaw)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Public()})
}

// RequestReset answers with the same generic message whether or not the
// account exists.
func (h *Handler) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email is required")
		return
	}

	const genericMsg = "If an account with that email exists, a password reset link has been sent."

	result, err := h.service.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		zap.L().Error("request-reset failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Server error")
		return
	}

	if result.DevMode {
		response.Success(c, http.StatusOK, gin.H{"message": genericMsg, "resetLink": result.ResetLink})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": genericMsg})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields")
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), req.UserID, req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrResetTokenExpired):
			response.Error(c, http.StatusBadRequest, "RESET_TOKEN_EXPIRED", "Token expired")
		case errors.Is(err, ErrInvalidResetToken):
			response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Invalid or expired token")
		default:
			zap.L().Error("reset-password failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Server error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password reset successful"})
}
