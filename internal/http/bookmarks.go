package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/events"
)

// bookmarkRequest names an existing resource or carries one inline.
type bookmarkRequest struct {
	ResourceID *uint          `json:"resourceId"`
	Resource   *resourceInput `json:"resource"`
}

type BookmarksController struct {
	bookmarks BookmarkStore
	resources ResourceStore
	builder   resourceBuilder
	dispatch  EventDispatcher
}

func NewBookmarksController(bookmarks BookmarkStore, resources ResourceStore, subjects SubjectStore, dispatch EventDispatcher) *BookmarksController {
	return &BookmarksController{
		bookmarks: bookmarks,
		resources: resources,
		builder:   resourceBuilder{subjects: subjects},
		dispatch:  dispatch,
	}
}

// Create bookmarks a resource for the caller. Inline resource data is matched
// by URL and catalogued when no resource has that URL yet.
// POST /api/bookmarks
func (bc *BookmarksController) Create(c *gin.Context) {
	var req bookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	res, err := bc.resolveResource(ctx, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	userID := GetUserID(c)
	bookmark, err := bc.bookmarks.Create(ctx, userID, res.ID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			respondErr(c, apperr.Conflict("resource already bookmarked"))
		case errors.Is(err, database.ErrMissingReference):
			respondErr(c, apperr.NotFound("resource"))
		default:
			respondErr(c, err)
		}
		return
	}
	bookmark.Resource = res

	bc.dispatch.Dispatch(ctx, events.New(events.TypeBookmarkCreated, userID, res.ID, map[string]any{
		"bookmarkId": bookmark.ID,
	}))
	respondCreated(c, bookmark)
}

func (bc *BookmarksController) resolveResource(ctx context.Context, req bookmarkRequest) (*entities.Resource, error) {
	switch {
	case req.ResourceID != nil:
		res, err := bc.resources.GetByID(ctx, *req.ResourceID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("resource")
		}
		return res, err
	case req.Resource != nil:
		if strings.TrimSpace(req.Resource.URL) == "" {
			return nil, apperr.Validation("url is required")
		}
		res, err := bc.resources.FindByURL(ctx, req.Resource.URL)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		res, err = bc.builder.build(ctx, *req.Resource)
		if err != nil {
			return nil, err
		}
		if err := bc.resources.Create(ctx, res); err != nil {
			return nil, err
		}
		return res, nil
	default:
		return nil, apperr.Validation("resourceId or resource is required")
	}
}

// List returns the caller's bookmarks.
// GET /api/bookmarks
func (bc *BookmarksController) List(c *gin.Context) {
	items, err := bc.bookmarks.ListForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": items})
}

// Delete removes one of the caller's bookmarks.
// DELETE /api/bookmarks/:id
func (bc *BookmarksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bc.bookmarks.Delete(c.Request.Context(), GetUserID(c), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondErr(c, err)
		return
	}
	respondSuccess(c, "bookmark deleted")
}
