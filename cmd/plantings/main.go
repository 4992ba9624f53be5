package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/plantings-render/internal/config"
	"github.com/aescanero/plantings-render/internal/plantings"
	"github.com/aescanero/plantings-render/internal/publish"
	"github.com/aescanero/plantings-render/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting plantings",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("mode", cfg.Mode),
	)
	logger.Debug("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client (optional)
	var redisClient *redis.Client
	if cfg.PublishEnabled() {
		redisClient, err = initRedis(cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis connection", zap.Error(err))
			}
		}()
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	}

	renderer := plantings.NewRenderer(logger)

	switch cfg.Mode {
	case config.ModeServe:
		serve(cfg, renderer, redisClient, logger)
	default:
		if err := printDocument(context.Background(), os.Stdout, renderer, publisherFor(cfg, redisClient, logger)); err != nil {
			logger.Fatal("failed to render plantings", zap.Error(err))
		}
	}
}

// printDocument renders once, writes the document to out and publishes it
// when pub is non-nil
func printDocument(ctx context.Context, out io.Writer, renderer *plantings.Renderer, pub *publish.Publisher) error {
	doc, err := renderer.Render(ctx)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	if pub != nil {
		if _, err := pub.Publish(ctx, doc); err != nil {
			return err
		}
	}

	return nil
}

// serve runs the HTTP server until SIGINT or SIGTERM
func serve(cfg *config.Config, renderer *plantings.Renderer, redisClient *redis.Client, logger *zap.Logger) {
	srv := server.NewServer(cfg.HTTPPort, renderer, redisClient, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("failed to start http server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("plantings server running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping server")

	if err := srv.Stop(); err != nil {
		logger.Error("failed to stop http server", zap.Error(err))
		return
	}

	logger.Info("server stopped gracefully")
}

// publisherFor returns a publisher when Redis is configured
func publisherFor(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) *publish.Publisher {
	if redisClient == nil {
		return nil
	}
	return publish.NewPublisher(redisClient, cfg.PublishStream, logger)
}

// initRedis creates a Redis client and checks the connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
