package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/events"
	"github.com/mrlokans/learnhub/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Audit == nil {
		cfg.Audit = noopAudit{}
	}
	if cfg.Dispatch == nil {
		cfg.Dispatch = noopDispatcher{}
	}

	router := gin.New()
	router.Use(Recovery(log))
	router.Use(RequestID())
	if cfg.Tracing {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(RequestLogger(log))
	router.Use(auth.SecurityHeadersMiddleware())
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", HeaderRequestID},
			ExposeHeaders:    []string{"Authorization", HeaderRequestID, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(ExposeErrorDetails(!cfg.Production))
	router.Use(RateLimit(cfg.RateLimit, cfg.Redis, log))

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "route")
	})

	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	staff := cfg.AuthMiddleware.RequireRole(entities.RoleTeacher, entities.RoleAdmin)
	admin := cfg.AuthMiddleware.RequireRole(entities.RoleAdmin)

	// Accounts
	authController := NewAuthController(cfg.Auth, cfg.LoginLimiter, cfg.Audit)
	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)

	// Discovery and catalogue
	searchController := NewSearchController(cfg.Searcher)
	resourcesController := NewResourcesController(cfg.Resources, cfg.Subjects, cfg.Audit, cfg.Dispatch)
	reviewsController := NewReviewsController(cfg.Reviews, cfg.Resources, cfg.Dispatch)

	router.GET("/resources", searchController.Discover)
	router.GET("/resources/search", searchController.Discover)
	router.POST("/resources/search", searchController.DiscoverJSON)
	router.GET("/resources/catalog", resourcesController.Catalog)
	router.GET("/resources/:id", resourcesController.Get)
	router.GET("/resources/:id/reviews", reviewsController.List)
	router.POST("/resources", requireAuth, staff, resourcesController.Create)
	router.PUT("/resources/:id", requireAuth, staff, resourcesController.Update)
	router.DELETE("/resources/:id", requireAuth, staff, resourcesController.Delete)

	subjectsController := NewSubjectsController(cfg.Subjects, cfg.Audit)
	router.GET("/subjects", subjectsController.List)
	router.POST("/subjects", requireAuth, staff, subjectsController.Create)
	router.DELETE("/subjects/:id", requireAuth, admin, subjectsController.Delete)

	// Interactions
	progressController := NewProgressController(cfg.Progress, cfg.Dispatch)
	router.POST("/progress/:resourceId", requireAuth, progressController.Update)
	router.GET("/progress", requireAuth, progressController.List)
	router.POST("/reviews/:resourceId", requireAuth, reviewsController.Create)

	api := router.Group("/api", requireAuth)
	{
		api.GET("/profile", authController.Profile)

		bookmarksController := NewBookmarksController(cfg.Bookmarks, cfg.Resources, cfg.Subjects, cfg.Dispatch)
		api.GET("/bookmarks", bookmarksController.List)
		api.POST("/bookmarks", bookmarksController.Create)
		api.DELETE("/bookmarks/:id", bookmarksController.Delete)

		adminController := NewAdminController(cfg.UserCounter, cfg.ResourceCounter, cfg.SubjectCounter, cfg.AuditReader)
		adminGroup := api.Group("/admin", admin)
		adminGroup.GET("", adminController.Dashboard)
		adminGroup.GET("/audit", adminController.AuditLog)
	}

	return router
}

type noopAudit struct{}

func (noopAudit) LogAuth(uint, string, string, string, string, bool) {}
func (noopAudit) LogCreate(uint, string, uint, string)               {}
func (noopAudit) LogDelete(uint, string, uint, string)               {}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, events.Event) {}
