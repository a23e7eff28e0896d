package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyRole   = "auth_role"
)

// TokenValidator resolves a bearer token to its user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*entities.User, error)
}

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	validator TokenValidator
}

func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{validator: validator}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's id and role in the context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		user, err := m.validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrMissingToken) {
				abortUnauthorized(c, err)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
				"code":  apperr.KindInternal,
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyRole, user.Role)
		c.Next()
	}
}

// RequireRole must run after RequireAuth. It rejects callers whose role is
// not in roles.
func (m *Middleware) RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Authorize(GetUserRole(c), roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": err.Error(),
				"code":  apperr.KindForbidden,
			})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", `Bearer realm="learnhub"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": err.Error(),
		"code":  apperr.KindAuth,
	})
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 when the request is unauthenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUserRole retrieves the authenticated user's role from the context.
func GetUserRole(c *gin.Context) entities.Role {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(entities.Role); ok {
			return role
		}
	}
	return ""
}
