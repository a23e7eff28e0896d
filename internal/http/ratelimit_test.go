package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/logger"
)

func rateLimitedRouter(cfg config.RateLimit, rdb redis.Scripter) *gin.Engine {
	router := gin.New()
	router.Use(RateLimit(cfg, rdb, logger.NewNop()))
	router.GET("/resources/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	cfg := config.RateLimit{Enabled: false, Capacity: 1}
	router := rateLimitedRouter(cfg, nil)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resources/1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.RateLimit{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            time.Minute,
		Prefix:         "rl",
	}
	router := rateLimitedRouter(cfg, rdb)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resources/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateKey(t *testing.T) {
	router := gin.New()
	var key string
	router.GET("/resources/:id", func(c *gin.Context) {
		key = rateKey("rl", c)
	})

	req := httptest.NewRequest(http.MethodGet, "/resources/42", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rl:ip:10.1.2.3:route:GET /resources/:id", key)
}
