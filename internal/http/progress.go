package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/events"
)

type progressRequest struct {
	Percentage *int `json:"percentage"`
}

type ProgressController struct {
	store    ProgressStore
	dispatch EventDispatcher
}

func NewProgressController(store ProgressStore, dispatch EventDispatcher) *ProgressController {
	return &ProgressController{store: store, dispatch: dispatch}
}

// Update records the caller's completion percentage for a resource.
// POST /progress/:resourceId
func (pc *ProgressController) Update(c *gin.Context) {
	resourceID, ok := parseIDParam(c, "resourceId")
	if !ok {
		return
	}
	var req progressRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Percentage == nil {
		respondBadRequest(c, "percentage is required")
		return
	}

	ctx := c.Request.Context()
	userID := GetUserID(c)
	p, err := pc.store.Upsert(ctx, userID, resourceID, *req.Percentage)
	if err != nil {
		if errors.Is(err, database.ErrMissingReference) {
			respondErr(c, apperr.NotFound("resource"))
			return
		}
		respondErr(c, err)
		return
	}

	if p.Status == entities.StatusCompleted {
		pc.dispatch.Dispatch(ctx, events.New(events.TypeProgressCompleted, userID, resourceID, nil))
	}
	c.JSON(http.StatusOK, p)
}

// List returns the caller's progress rows.
// GET /progress
func (pc *ProgressController) List(c *gin.Context) {
	rows, err := pc.store.ListForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": rows})
}
