package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/learnhub/internal/search"
)

// searchRequest is the JSON body accepted by POST /resources/search.
type searchRequest struct {
	Keyword    string `json:"keyword"`
	Topic      string `json:"topic"`
	Subject    string `json:"subject"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

type SearchController struct {
	searcher ResourceSearcher
}

func NewSearchController(searcher ResourceSearcher) *SearchController {
	return &SearchController{searcher: searcher}
}

// Discover runs a live provider search from query parameters.
// GET /resources?keyword|topic=&subject=&type=&difficulty=&page=&limit=
// GET /resources/search?query=...
func (sc *SearchController) Discover(c *gin.Context) {
	f := search.Filters{
		Keyword:    firstNonEmpty(c.Query("keyword"), c.Query("topic"), c.Query("query")),
		Subject:    c.Query("subject"),
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
	}
	page := queryInt(c, "page", search.DefaultPage)
	limit := queryInt(c, "limit", search.DefaultPageSize)
	sc.run(c, f, page, limit)
}

// DiscoverJSON runs a live provider search from a JSON body.
// POST /resources/search
func (sc *SearchController) DiscoverJSON(c *gin.Context) {
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	f := search.Filters{
		Keyword:    firstNonEmpty(req.Keyword, req.Topic),
		Subject:    req.Subject,
		Type:       req.Type,
		Difficulty: req.Difficulty,
	}
	sc.run(c, f, req.Page, req.Limit)
}

func (sc *SearchController) run(c *gin.Context, f search.Filters, page, limit int) {
	result, err := sc.searcher.Search(c.Request.Context(), f, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
