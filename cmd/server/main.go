// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"leadops/internal/api"
	"leadops/internal/common/aws"
	"leadops/internal/common/config"
	"leadops/internal/common/database"
	"leadops/internal/common/logger"
	"leadops/internal/dispatch"
	"leadops/internal/matchmaker"
	"leadops/internal/override"
	"leadops/internal/store"
	"leadops/internal/telemetry"
	"leadops/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting console server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init delivery providers ---
	var emailSender dispatch.EmailSender = dispatch.DisabledEmailSender{}
	if cfg.Integrations.AWS.SES.Enabled {
		emailClient, err := aws.NewEmailClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SES.FromEmail)
		if err != nil {
			zapLog.Fatal("SES client failed", zap.Error(err))
		}
		emailSender = emailClient
	} else {
		zapLog.Warn("SES disabled, email dispatches will be logged as failed")
	}

	var smsSender dispatch.SMSSender = dispatch.DisabledSMSSender{}
	if cfg.Integrations.AWS.SNS.Enabled {
		smsClient, err := aws.NewSMSClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SNS.DefaultSMSSenderID)
		if err != nil {
			zapLog.Fatal("SNS client failed", zap.Error(err))
		}
		smsSender = smsClient
	} else {
		zapLog.Warn("SNS disabled, SMS dispatches will be logged as failed")
	}
	zapLog.Info("Delivery providers initialized")

	// --- Load outreach template registry (optional) ---
	var templateRegistry *registry.OutreachRegistry
	if path := cfg.Outreach.TemplateRegistryPath; path != "" {
		templateRegistry, err = registry.LoadRegistry(path)
		if err != nil {
			zapLog.Fatal("template registry load failed", zap.Error(err), zap.String("path", path))
		}
		zapLog.Info("Template registry loaded",
			zap.Int("templates", len(templateRegistry.Templates)))
	}

	// --- Stores and services ---
	contactStore := store.NewContactStore(pg.DB)
	opportunityStore := store.NewOpportunityStore(pg.DB)
	touchStore := store.NewTouchStore(pg.DB)
	stateStore := store.NewStateStore(pg.DB)

	matcher := matchmaker.New(log, templateRegistry)
	feedCache := matchmaker.NewFeedCache(rdb.Client, time.Duration(cfg.Outreach.FeedCacheTTL)*time.Second)
	gateway := dispatch.NewGateway(contactStore, touchStore, emailSender, smsSender, log)
	campaigns := telemetry.NewService(touchStore, telemetry.Config{
		Window:              time.Duration(cfg.Outreach.WindowHours) * time.Hour,
		WinnerReplyRate:     cfg.Outreach.WinnerReplyRate,
		SuboptimalReplyRate: cfg.Outreach.SuboptimalReplyRate,
		SuboptimalMinVolume: cfg.Outreach.SuboptimalMinVolume,
	}, log)
	console := override.NewConsole(stateStore, cfg.Override.PIN, log)

	handler := api.NewHandler(api.Deps{
		Contacts:      contactStore,
		Opportunities: opportunityStore,
		Touches:       touchStore,
		Matcher:       matcher,
		FeedCache:     feedCache,
		Gateway:       gateway,
		Campaigns:     campaigns,
		Console:       console,
		ConsoleToken:  cfg.Override.ConsoleToken,
		Pingers:       []api.Pinger{pg, rdb},
		Logger:        log,
	})
	router := api.NewRouter(handler, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("forced shutdown", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
