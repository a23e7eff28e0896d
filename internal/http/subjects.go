package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/database"
)

type subjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SubjectsController struct {
	store SubjectStore
	audit AuditLogger
}

func NewSubjectsController(store SubjectStore, audit AuditLogger) *SubjectsController {
	return &SubjectsController{store: store, audit: audit}
}

// List returns all subjects ordered by name.
// GET /subjects
func (sc *SubjectsController) List(c *gin.Context) {
	subjects, err := sc.store.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// Create adds a subject. Names are unique regardless of case.
// POST /subjects (TEACHER, ADMIN)
func (sc *SubjectsController) Create(c *gin.Context) {
	var req subjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject, err := sc.store.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondErr(c, apperr.Conflict("subject already exists"))
			return
		}
		respondErr(c, err)
		return
	}

	sc.audit.LogCreate(GetUserID(c), "subject", subject.ID, subject.Name)
	respondCreated(c, subject)
}

// Delete removes a subject no resource refers to.
// DELETE /subjects/:id (ADMIN)
func (sc *SubjectsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	subject, err := sc.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "subject")
			return
		}
		respondErr(c, err)
		return
	}

	if err := sc.store.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrInUse) {
			respondErr(c, apperr.Conflict("subject is referenced by resources"))
			return
		}
		respondErr(c, err)
		return
	}

	sc.audit.LogDelete(GetUserID(c), "subject", id, subject.Name)
	respondSuccess(c, "subject deleted")
}
