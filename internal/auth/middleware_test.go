package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/entities"
)

type stubValidator struct {
	users map[string]*entities.User
}

func (s stubValidator) ValidateToken(_ context.Context, token string) (*entities.User, error) {
	if token == "broken" {
		return nil, errors.New("database unavailable")
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, ErrInvalidToken
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewMiddleware(stubValidator{users: map[string]*entities.User{
		"student": {ID: 1, Role: entities.RoleStudent},
		"admin":   {ID: 2, Role: entities.RoleAdmin},
	}})

	r := gin.New()
	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": GetUserRole(c)})
	})
	r.GET("/admin", mw.RequireAuth(), mw.RequireRole(entities.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer student", http.StatusOK},
		{"lowercase scheme", "bearer student", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"auth_error"`)
			}
		})
	}
}

func TestRequireAuth_SetsContext(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"role":"ADMIN"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter()

	for token, want := range map[string]int{
		"student": http.StatusForbidden,
		"admin":   http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}

func TestMiddleware_ErrorBodiesUseAppErrorKinds(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name  string
		path  string
		token string
		kind  apperr.Kind
	}{
		{"missing token", "/me", "", apperr.KindAuth},
		{"role mismatch", "/admin", "student", apperr.KindForbidden},
		{"validator failure", "/me", "broken", apperr.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.kind.Status(), w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, string(tt.kind), body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}
