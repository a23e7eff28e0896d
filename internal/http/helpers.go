package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/auth"
)

// ContextKeyExposeErrors marks requests whose server-side error responses may
// carry the underlying error text.
const ContextKeyExposeErrors = "expose_error_details"

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`              // machine-readable error kind
	Details any    `json:"details,omitempty"` // underlying cause, outside production only
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageResponse wraps one page of a listing.
type PageResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// --- Error Response Helpers ---

// respondErr classifies err, records it for the request logger and writes the
// error body. Internal and upstream causes are shown only when allowed.
func respondErr(c *gin.Context, err error) {
	ae := toAppError(err)
	_ = c.Error(err)

	body := ErrorResponse{Error: ae.Message, Code: string(ae.Kind)}
	if ae.Kind.IsServerSide() && ae.Err != nil && c.GetBool(ContextKeyExposeErrors) {
		body.Details = ae.Err.Error()
	}
	c.AbortWithStatusJSON(ae.Kind.Status(), body)
}

// respondBadRequest sends a 400 validation error.
func respondBadRequest(c *gin.Context, message string) {
	respondErr(c, apperr.Validation(message))
}

// respondNotFound sends a 404 for the named thing.
func respondNotFound(c *gin.Context, what string) {
	respondErr(c, apperr.NotFound(what))
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// queryInt reads a positive integer query parameter, falling back to def on
// absence or garbage.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// bindJSON decodes the request body into dst or responds with a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, "invalid request body")
		return false
	}
	return true
}
