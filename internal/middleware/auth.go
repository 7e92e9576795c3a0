package middleware

import (
	"context"
	"net/http"
	"strings"

	"eventhub/internal/domain"
	"eventhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const accessCookieName = "accessToken"

type TokenParser interface {
	ParseAccess(tokenStr string) (int64, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAuth rejects the request unless a valid access token resolves
// to an existing user. The identity is attached with the password hash
// stripped.
func RequireAuth(tokens TokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, tokens, users)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return
		}
		attach(c, user)
		c.Next()
	}
}

// AttachUser runs the same validation but anonymous callers pass
// through. Routes that behave differently for logged-in users check
// for the attached identity themselves.
func AttachUser(tokens TokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c, tokens, users); ok {
			attach(c, user)
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, tokens TokenParser, users UserLoader) (*domain.User, bool) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, false
	}

	userID, err := tokens.ParseAccess(tokenStr)
	if err != nil {
		return nil, false
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, false
	}
	user.PasswordHash = ""
	return user, true
}

// extractToken prefers the session cookie and falls back to a bearer
// Authorization header.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookieName); err == nil && cookie != "" {
		return cookie
	}

	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func attach(c *gin.Context, user *domain.User) {
	c.Set("user_id", user.ID)
	c.Set("user_email", user.Email)
}
