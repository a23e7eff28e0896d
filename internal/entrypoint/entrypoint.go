// Package entrypoint wires configuration, storage and background workers into
// a running HTTP server.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/learnhub/internal/audit"
	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/database"
	auditRepo "github.com/mrlokans/learnhub/internal/database/audit"
	"github.com/mrlokans/learnhub/internal/database/bookmarks"
	"github.com/mrlokans/learnhub/internal/database/progress"
	"github.com/mrlokans/learnhub/internal/database/resources"
	"github.com/mrlokans/learnhub/internal/database/reviews"
	"github.com/mrlokans/learnhub/internal/database/stats"
	"github.com/mrlokans/learnhub/internal/database/subjects"
	"github.com/mrlokans/learnhub/internal/database/users"
	"github.com/mrlokans/learnhub/internal/events"
	http_controllers "github.com/mrlokans/learnhub/internal/http"
	"github.com/mrlokans/learnhub/internal/logger"
	"github.com/mrlokans/learnhub/internal/observability"
	"github.com/mrlokans/learnhub/internal/scheduler"
	"github.com/mrlokans/learnhub/internal/search"
	"github.com/mrlokans/learnhub/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the server until SIGINT or SIGTERM, then drains it.
func Serve(router *gin.Engine, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", srv.Addr, "environment", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server", "signal", sig.String(), "timeout", timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop taking requests before draining the workers they feed.
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("Server exiting")
	return nil
}

// Run builds every dependency from cfg and serves until interrupted.
func Run(cfg *config.Config, version string) error {
	log, err := logger.New(cfg.App.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting LearnHub", "version", version)
	if cfg.Auth.UsingDevJWTSecret {
		log.Warn("AUTH_JWT_SECRET is not set; using the development secret")
	}
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, *cfg, version, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", "error", err)
		}
	}()
	log.Info("Database ready", "driver", cfg.Database.Driver)

	userRepo := users.NewRepository(db.DB)
	resourceRepo := resources.NewRepository(db.DB)
	subjectRepo := subjects.NewRepository(db.DB)
	auditEvents := auditRepo.NewRepository(db.DB)
	statsRepo := stats.NewRepository(db.DB)

	authService, err := auth.NewService(userRepo, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry), cfg.Auth)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	loginLimiter := auth.NewLoginLimiter(auth.LoginLimitConfig{
		MaxAttempts: cfg.Auth.MaxLoginAttempts,
		Window:      cfg.Auth.RateLimitWindow,
		Lockout:     cfg.Auth.LockoutDuration,
	})
	defer loginLimiter.Stop()

	auditService := audit.NewService(auditEvents, log)

	searchClient, err := search.NewClient(ctx, cfg.Search, log)
	if err != nil {
		return fmt.Errorf("init search client: %w", err)
	}

	publisher := newPublisher(cfg.AMQP, log)
	dispatcher := events.NewDispatcher(publisher, log)

	var taskClient *tasks.Client
	var sched *scheduler.Scheduler
	var taskCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks), log)
		if err != nil {
			return fmt.Errorf("init task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", "error", err)
			}
		}()

		taskClient.Register(
			tasks.NewPublishEventQueue(publisher),
			tasks.NewRefreshResourceStatsQueue(statsRepo, log),
			tasks.NewCleanupAuditEventsQueue(auditEvents, log),
		)
		dispatcher.SetEnqueuer(taskClient)

		sched, taskCancel, err = startBackground(taskClient, cfg.Tasks, log)
		if err != nil {
			return err
		}
	} else {
		log.Info("Task queue disabled; events publish inline and stats are not refreshed")
	}

	var limiterRedis redis.Scripter
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unreachable; rate limiting fails open until it recovers", "addr", cfg.Redis.Addr, "error", err)
		}
		cancel()
		limiterRedis = redisClient
	} else if cfg.RateLimit.Enabled {
		log.Warn("RATE_LIMIT_ENABLED is set but REDIS_ADDR is empty; rate limiting disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Resources:       resourceRepo,
		Subjects:        subjectRepo,
		Progress:        progress.NewRepository(db.DB),
		Bookmarks:       bookmarks.NewRepository(db.DB),
		Reviews:         reviews.NewRepository(db.DB),
		Health:          db,
		UserCounter:     userRepo,
		ResourceCounter: resourceRepo,
		SubjectCounter:  subjectRepo,
		AuditReader:     auditEvents,
		Auth:            authService,
		AuthMiddleware:  auth.NewMiddleware(authService),
		LoginLimiter:    loginLimiter,
		Searcher:        searchClient,
		Audit:           auditService,
		Dispatch:        dispatcher,
		Redis:           limiterRedis,
		RateLimit:       cfg.RateLimit,
		Production:      cfg.App.IsProduction(),
		CORSOrigins:     cfg.CORS.AllowedOrigins,
		Tracing:         cfg.Tracing.Enabled,
		ServiceName:     cfg.App.Name,
		Version:         version,
		Logger:          log,
	})

	onShutdown := func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCancel()
		}
		auditService.Wait()
		if err := dispatcher.Close(); err != nil {
			log.Error("Error closing event publisher", "error", err)
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Error("Error flushing traces", "error", err)
		}
	}

	return Serve(router, cfg, log, onShutdown)
}

// newPublisher connects to the broker when one is configured and falls back to
// logging events otherwise.
func newPublisher(cfg config.AMQP, log *logger.Logger) events.Publisher {
	if cfg.URL == "" {
		log.Info("AMQP_URL not set; domain events are logged only")
		return events.NewLogPublisher(log)
	}
	pub, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange, log)
	if err != nil {
		log.Warn("Broker unavailable; domain events are logged only", "error", err)
		return events.NewLogPublisher(log)
	}
	return pub
}

// taskRunner is the part of tasks.Client that background startup needs.
type taskRunner interface {
	scheduler.TaskAdder
	Start(ctx context.Context)
}

var _ taskRunner = (*tasks.Client)(nil)

// startBackground starts the task workers and schedules the periodic jobs.
// The returned cancel stops the workers; on error they are already stopped.
func startBackground(runner taskRunner, cfg config.Tasks, log *logger.Logger) (*scheduler.Scheduler, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())
	runner.Start(ctx)

	sched := scheduler.New(runner, log)
	jobs := []scheduler.Job{
		{Name: "refresh_resource_stats", Schedule: cfg.StatsSchedule, Task: tasks.RefreshResourceStatsTask{}},
		{Name: "cleanup_audit_events", Schedule: cfg.AuditCleanupSchedule, Task: tasks.CleanupAuditEventsTask{RetentionDays: cfg.AuditRetentionDays}},
	}
	for _, job := range jobs {
		if err := sched.Add(job); err != nil {
			cancel()
			return nil, nil, fmt.Errorf("schedule %s: %w", job.Name, err)
		}
	}
	sched.Start(ctx)
	return sched, cancel, nil
}
