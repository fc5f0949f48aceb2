package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/auth"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/logging"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
	"github.com/BruksfildServices01/salon-platform/internal/routes"
	"github.com/BruksfildServices01/salon-platform/internal/storage"
	"github.com/BruksfildServices01/salon-platform/internal/validators"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	httperr.SetLogger(log)

	if err := validators.Register(); err != nil {
		log.WithError(err).Fatal("failed to register validators")
	}

	db := dbpkg.NewDB(cfg, log)

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Tokens:   auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Authz:    authz.New(nil),
		Audit:    dispatcher,
		Notifier: notification.NewService(db, newSender(cfg, log), log),
		Limiter:  newLimiter(cfg, log),
		Storage:  newPresigner(cfg, log),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("addr", cfg.Addr()).Info("server running")
	if err := serve(ctx, srv, log); err != nil {
		// returning lets the deferred dispatcher flush queued audit events
		log.WithError(err).Error("server stopped")
	}
}

// serve runs srv until ctx is cancelled or the listener fails. Either
// way it returns instead of exiting so callers can release resources.
func serve(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newLimiter prefers Redis so limits hold across instances. Without
// REDIS_URL, or when Redis is unreachable at boot, it limits in-process.
func newLimiter(cfg *config.Config, log *logrus.Logger) middleware.Limiter {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("invalid REDIS_URL, using in-memory rate limiter")
		} else {
			client := redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := client.Ping(ctx).Err(); err != nil {
				log.WithError(err).Warn("redis unreachable, using in-memory rate limiter")
				_ = client.Close()
				return middleware.NewMemoryLimiter(cfg.LoginMaxAttempts, cfg.LoginWindow)
			}
			return middleware.NewRedisLimiter(client, cfg.LoginMaxAttempts, cfg.LoginWindow)
		}
	}
	return middleware.NewMemoryLimiter(cfg.LoginMaxAttempts, cfg.LoginWindow)
}

func newSender(cfg *config.Config, log *logrus.Logger) notification.Sender {
	if !cfg.SMSEnabled() {
		log.Info("twilio not configured, notifications are stored only")
		return notification.NoopSender{}
	}
	return notification.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
}

func newPresigner(cfg *config.Config, log *logrus.Logger) storage.Presigner {
	if !cfg.StorageEnabled() {
		log.Info("AWS_S3_BUCKET not set, profile picture uploads disabled")
		return nil
	}
	return storage.NewS3Presigner(cfg.AWSRegion, cfg.AWSS3Bucket, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
}
