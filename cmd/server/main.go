package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/config"
	"github.com/iliyamo/portfolio-api/internal/database"
	"github.com/iliyamo/portfolio-api/internal/events"
	"github.com/iliyamo/portfolio-api/internal/handler"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/media"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/repository"
	"github.com/iliyamo/portfolio-api/internal/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load() // optional
	cfg := config.Load()
	logger := logging.New(cfg.Env, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.SlogLogger) error {
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// The limiter takes an interface; a nil *redis.Client must stay an untyped nil.
	var scripter redis.Scripter
	if rdb := config.NewRedisClient(cfg.Redis); rdb != nil {
		defer rdb.Close()
		scripter = rdb
	} else if cfg.RateLimit.Enabled {
		logger.Warn(ctx, "redis unreachable, rate limiting disabled", "addr", cfg.Redis.Addr)
	}

	var uploader handler.Uploader
	if cfg.S3.Enabled() {
		store, err := media.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("s3 store: %w", err)
		}
		uploader = media.NewUploader(store, cfg.UploadMaxBytes)
	} else {
		logger.Info(ctx, "S3_BUCKET not set, uploads disabled")
	}

	users := repository.NewUserRepo(db)
	authn := auth.NewAuthenticator(auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTL), users)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	// leave headroom for multipart framing around the largest upload
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dK", cfg.UploadMaxBytes/1024+1024)))
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics())

	router.Register(e, router.Handlers{
		Health:      handler.NewHealthHandler(db, logger),
		Auth:        handler.NewAuthHandler(authn, users, cfg.BcryptCost, logger),
		Profile:     handler.NewProfileHandler(repository.NewProfileRepo(db), logger),
		Project:     handler.NewProjectHandler(repository.NewProjectRepo(db), logger),
		Testimonial: handler.NewTestimonialHandler(repository.NewTestimonialRepo(db), logger),
		Article:     handler.NewArticleHandler(repository.NewArticleRepo(db), logger),
		Message:     handler.NewMessageHandler(repository.NewMessageRepo(db), events.New(cfg.AMQPURL, logger), logger),
		Site:        handler.NewSiteHandler(repository.NewSiteRepo(db), logger),
		AI:          handler.NewAIHandler(logger),
		Media:       handler.NewMediaHandler(uploader, logger),
	}, router.NewGuards(authn, middleware.NewTokenBucket(cfg.RateLimit, scripter, logger), logger))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
