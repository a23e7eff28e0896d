package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/resources"
	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/events"
)

type ResourcesController struct {
	store    ResourceStore
	builder  resourceBuilder
	audit    AuditLogger
	dispatch EventDispatcher
}

func NewResourcesController(store ResourceStore, subjects SubjectStore, audit AuditLogger, dispatch EventDispatcher) *ResourcesController {
	return &ResourcesController{
		store:    store,
		builder:  resourceBuilder{subjects: subjects},
		audit:    audit,
		dispatch: dispatch,
	}
}

// Get returns one resource with its subject and stats.
// GET /resources/:id
func (rc *ResourcesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res, err := rc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondResourceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Catalog lists locally stored resources.
// GET /resources/catalog?subject=&type=&difficulty=&keyword=&page=&limit=
func (rc *ResourcesController) Catalog(c *gin.Context) {
	f := resources.Filter{
		Subject: c.Query("subject"),
		Keyword: c.Query("keyword"),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", resources.DefaultLimit),
	}
	if raw := c.Query("type"); raw != "" {
		t, ok := entities.ParseResourceType(raw)
		if !ok {
			respondBadRequest(c, "type must be one of VIDEO, ARTICLE, COURSE, DOCUMENT")
			return
		}
		f.Type = t
	}
	if raw := c.Query("difficulty"); raw != "" {
		d, ok := entities.ParseDifficulty(raw)
		if !ok {
			respondBadRequest(c, "difficulty must be one of BEGINNER, INTERMEDIATE, ADVANCED")
			return
		}
		f.Difficulty = d
	}
	f.Normalize()

	items, total, err := rc.store.List(c.Request.Context(), f)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

// Create adds a resource to the catalogue.
// POST /resources (TEACHER, ADMIN)
func (rc *ResourcesController) Create(c *gin.Context) {
	var in resourceInput
	if !bindJSON(c, &in) {
		return
	}

	ctx := c.Request.Context()
	res, err := rc.builder.build(ctx, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := rc.store.Create(ctx, res); err != nil {
		respondErr(c, err)
		return
	}

	userID := GetUserID(c)
	rc.audit.LogCreate(userID, "resource", res.ID, res.Title)
	rc.dispatch.Dispatch(ctx, events.New(events.TypeResourceCreated, userID, res.ID, map[string]any{
		"title":  res.Title,
		"source": res.Source,
	}))
	respondCreated(c, res)
}

// Update applies a partial update.
// PUT /resources/:id (TEACHER, ADMIN)
func (rc *ResourcesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch resourcePatch
	if !bindJSON(c, &patch) {
		return
	}

	ctx := c.Request.Context()
	upd, err := rc.builder.patch(ctx, patch)
	if err != nil {
		respondErr(c, err)
		return
	}

	res, err := rc.store.Update(ctx, id, upd)
	if err != nil {
		respondResourceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete removes a resource that nothing references.
// DELETE /resources/:id (TEACHER, ADMIN)
func (rc *ResourcesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res, err := rc.store.GetByID(ctx, id)
	if err != nil {
		respondResourceErr(c, err)
		return
	}

	if err := rc.store.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrInUse) {
			respondErr(c, apperr.Conflict("resource has progress, bookmarks or reviews"))
			return
		}
		respondResourceErr(c, err)
		return
	}

	userID := GetUserID(c)
	rc.audit.LogDelete(userID, "resource", id, res.Title)
	rc.dispatch.Dispatch(ctx, events.New(events.TypeResourceDeleted, userID, id, nil))
	respondSuccess(c, "resource deleted")
}

// respondResourceErr reports a missing resource by name.
func respondResourceErr(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "resource")
		return
	}
	respondErr(c, err)
}
