package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/events"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewsController struct {
	reviews   ReviewStore
	resources ResourceStore
	dispatch  EventDispatcher
}

func NewReviewsController(reviews ReviewStore, resources ResourceStore, dispatch EventDispatcher) *ReviewsController {
	return &ReviewsController{reviews: reviews, resources: resources, dispatch: dispatch}
}

// Create stores the caller's review of a resource.
// POST /reviews/:resourceId
func (rc *ReviewsController) Create(c *gin.Context) {
	resourceID, ok := parseIDParam(c, "resourceId")
	if !ok {
		return
	}
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := GetUserID(c)
	review, err := rc.reviews.Create(ctx, userID, resourceID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			respondErr(c, apperr.Conflict("resource already reviewed"))
		case errors.Is(err, database.ErrMissingReference):
			respondErr(c, apperr.NotFound("resource"))
		default:
			respondErr(c, err)
		}
		return
	}

	rc.dispatch.Dispatch(ctx, events.New(events.TypeReviewCreated, userID, resourceID, map[string]any{
		"reviewId": review.ID,
		"rating":   review.Rating,
	}))
	respondCreated(c, review)
}

// List returns a resource's reviews.
// GET /resources/:id/reviews
func (rc *ReviewsController) List(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := rc.resources.GetByID(ctx, id); err != nil {
		respondResourceErr(c, err)
		return
	}

	items, err := rc.reviews.ListForResource(ctx, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": items})
}
