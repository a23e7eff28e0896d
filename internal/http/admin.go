package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/database/audit"
	"github.com/mrlokans/learnhub/internal/entities"
)

const auditPageSize = 25

// AuditReader pages through audit events.
type AuditReader interface {
	Find(ctx context.Context, q audit.Query) ([]entities.AuditEvent, int64, error)
}

type AdminController struct {
	users     Counter
	resources Counter
	subjects  Counter
	audit     AuditReader
}

func NewAdminController(users, resources, subjects Counter, audit AuditReader) *AdminController {
	return &AdminController{users: users, resources: resources, subjects: subjects, audit: audit}
}

// Dashboard returns catalogue counts.
// GET /api/admin
func (ac *AdminController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts := make(map[string]int64, 3)
	for name, counter := range map[string]Counter{
		"users":     ac.users,
		"resources": ac.resources,
		"subjects":  ac.subjects,
	} {
		n, err := counter.Count(ctx)
		if err != nil {
			respondErr(c, err)
			return
		}
		counts[name] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "welcome, admin",
		"users":     counts["users"],
		"resources": counts["resources"],
		"subjects":  counts["subjects"],
	})
}

// AuditLog returns a page of audit events, newest first.
// GET /api/admin/audit?page=&type=&userId=&since=
func (ac *AdminController) AuditLog(c *gin.Context) {
	page := queryInt(c, "page", 1)
	q := audit.Query{
		UserID:    uint(queryInt(c, "userId", 0)),
		EventType: entities.AuditEventType(c.Query("type")),
		Limit:     auditPageSize,
		Offset:    (page - 1) * auditPageSize,
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondBadRequest(c, "since must be an RFC3339 timestamp")
			return
		}
		q.Since = since
	}

	events, total, err := ac.audit.Find(c.Request.Context(), q)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, PageResponse{Items: events, Total: total, Page: page, Limit: auditPageSize})
}
