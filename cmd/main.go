package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/RehanMehtaIND/noteslite/config"
	"github.com/RehanMehtaIND/noteslite/internal/auth"
	database "github.com/RehanMehtaIND/noteslite/internal/core"
	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/core/repository"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
	logicv1 "github.com/RehanMehtaIND/noteslite/internal/logic/v1"
	v1 "github.com/RehanMehtaIND/noteslite/internal/web/v1"
	"github.com/RehanMehtaIND/noteslite/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("Configuration validation failed: " + err.Error())
	}

	logger.Setup(cfg.Logging.Level)

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("env", cfg.Service.Env).
		Str("port", cfg.Service.Port).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("Service starting")

	// Initialize OpenTelemetry tracing
	var tp interface{ Shutdown(context.Context) error }
	if cfg.Tracing.Enabled {
		provider, err := middleware.InitTracing(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize tracing")
		} else {
			tp = provider
			log.Info().
				Str("endpoint", cfg.Tracing.Endpoint).
				Float64("sample_rate", cfg.Tracing.SampleRate).
				Msg("Tracing initialized")
		}
	} else {
		log.Info().Msg("Tracing disabled (TRACING_ENABLED=false)")
	}

	// Initialize Pyroscope profiling
	if cfg.Profiling.Enabled {
		if err := middleware.InitProfiling(cfg); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize profiling")
		} else {
			log.Info().
				Str("endpoint", cfg.Profiling.Endpoint).
				Msg("Profiling initialized")
			defer middleware.StopProfiling()
		}
	} else {
		log.Info().Msg("Profiling disabled (PROFILING_ENABLED=false)")
	}

	// Initialize database connection pool (pgx)
	pool, err := database.Connect(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Database connection pool established")

	users := repository.NewUserRepository(pool)
	boards := repository.NewBoardRepository(pool)
	workspaces := repository.NewWorkspaceRepository(pool)

	// Optional Redis for credential throttling
	var rdb *redis.Client
	var throttle gin.HandlerFunc
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		rdb = redis.NewClient(opt)
		limiter := repository.NewAttemptLimiter(rdb, cfg.Redis.AttemptsPerWindow, cfg.GetAttemptWindowDuration())
		throttle = middleware.Throttle(limiter, "auth")
		log.Info().
			Int("attempts", cfg.Redis.AttemptsPerWindow).
			Dur("window", cfg.GetAttemptWindowDuration()).
			Msg("Credential throttling enabled")
	} else {
		log.Info().Msg("Credential throttling disabled (REDIS_URL unset)")
	}

	authHandler, resolver, err := buildAuth(cfg, users, boards)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	var isShuttingDown atomic.Bool

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{middleware.TraceIDHeader}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.TracingMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.PrometheusMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness check
	// Returns 503 once shutdown has started, to drain traffic before HTTP shutdown.
	r.GET("/ready", func(c *gin.Context) {
		if isShuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.Routes{
		Auth:       authHandler,
		Boards:     v1.NewBoardHandler(logicv1.NewBoardService(boards)),
		Workspaces: v1.NewWorkspaceHandler(logicv1.NewWorkspaceService(workspaces)),
		Health:     v1.NewHealthHandler(users, pool.Config().ConnConfig.Database, cfg.Database.URL != ""),
		Gate:       middleware.RequireUser(resolver),
		Throttle:   throttle,
	}.Register(r.Group("/api/v1"))

	srv := &http.Server{
		Addr:              ":" + cfg.Service.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Service.Port).Msg("Starting noteslite API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	// Fail readiness first and wait for propagation.
	isShuttingDown.Store(true)
	drainDelay := cfg.GetReadinessDrainDelayDuration()
	if drainDelay > 0 {
		log.Info().Dur("delay", drainDelay).Msg("Readiness drain delay started")
		time.Sleep(drainDelay)
		log.Info().Dur("delay", drainDelay).Msg("Readiness drain delay completed")
	}

	shutdownTimeout := cfg.GetShutdownTimeoutDuration()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Dur("timeout", shutdownTimeout).Msg("Shutting down server...")

	// 1. Shutdown HTTP server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		log.Info().Msg("HTTP server shutdown complete")
	}

	// 2. Close Redis and database connections
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Redis close error")
		}
	}
	pool.Close()
	log.Info().Msg("Database pool closed")

	// 3. Shutdown tracer
	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Tracer shutdown error")
		} else {
			log.Info().Msg("Tracer shutdown complete")
		}
	}

	log.Info().Msg("Graceful shutdown complete")
}

// buildAuth selects the identity strategy for AUTH_MODE. Local mode owns
// credentials and sessions; delegated mode trusts the identity provider and
// mounts no credential routes.
func buildAuth(cfg *config.Config, users domain.UserRepository, boards domain.BoardRepository) (*v1.AuthHandler, auth.Resolver, error) {
	cookies := auth.NewCookiePolicy(cfg.IsProduction())

	if cfg.Auth.Mode == config.AuthModeDelegated {
		provider := auth.NewBearerProvider(cfg.Auth.ProviderIssuer, []byte(cfg.Auth.ProviderSecret))
		return v1.NewAuthHandler(nil, cookies), auth.NewDelegatedResolver(provider, users), nil
	}

	secret, err := cfg.SigningSecret()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET unset, using the development signing secret")
	}
	codec, err := auth.NewTokenCodec([]byte(secret))
	if err != nil {
		return nil, nil, err
	}

	svc := logicv1.NewAuthService(users, boards, auth.NewHasher(cfg.Auth.BcryptCost), codec)
	return v1.NewAuthHandler(svc, cookies), auth.NewCookieResolver(codec, users), nil
}
