package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/entities"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

type AuthController struct {
	auth    Authenticator
	limiter LoginLimiter
	audit   AuditLogger
}

func NewAuthController(authenticator Authenticator, limiter LoginLimiter, audit AuditLogger) *AuthController {
	return &AuthController{auth: authenticator, limiter: limiter, audit: audit}
}

// Register creates a STUDENT account and returns it with a token.
// POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := ac.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}

	ac.audit.LogAuth(session.User.ID, "register", session.User.Email, c.ClientIP(), c.Request.UserAgent(), true)
	setAuthorizationHeader(c, session.Token)
	respondCreated(c, AuthResponse{User: session.User, Token: session.Token})
}

// Login exchanges credentials for a token.
// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	ip := c.ClientIP()
	if ac.limiter != nil {
		if allowed, retryAfter := ac.limiter.Allow(ip, req.Email); !allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			respondErr(c, apperr.New(apperr.KindRateLimited, "too many login attempts"))
			return
		}
	}

	session, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if ac.limiter != nil {
				ac.limiter.RecordFailure(ip, req.Email)
			}
			ac.audit.LogAuth(0, "login", req.Email, ip, c.Request.UserAgent(), false)
		}
		respondErr(c, err)
		return
	}

	if ac.limiter != nil {
		ac.limiter.RecordSuccess(ip, req.Email)
	}
	ac.audit.LogAuth(session.User.ID, "login", session.User.Email, ip, c.Request.UserAgent(), true)
	setAuthorizationHeader(c, session.Token)
	c.JSON(http.StatusOK, AuthResponse{User: session.User, Token: session.Token})
}

// Profile returns the caller's account.
// GET /api/profile
func (ac *AuthController) Profile(c *gin.Context) {
	user, err := ac.auth.GetUserByID(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// setAuthorizationHeader mirrors the token in the response header for
// clients that read it from there.
func setAuthorizationHeader(c *gin.Context, token string) {
	c.Header("Authorization", "Bearer "+token)
}
