// Package main is the entry point for the REST API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/codeblock/rest-service/internal/config"
	"github.com/codeblock/rest-service/internal/password"
	"github.com/codeblock/rest-service/internal/pipeline"
	"github.com/codeblock/rest-service/internal/server"
	"github.com/codeblock/rest-service/internal/store"
	"github.com/codeblock/rest-service/internal/token"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use a basic logger for startup errors
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.ServerPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("shutdown_timeout", cfg.ShutdownTimeout),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.String("store_backend", cfg.StoreBackend),
		zap.Bool("password_hashing", cfg.PasswordHashing),
	)

	if !cfg.PasswordHashing {
		logger.Warn("password hashing disabled: credentials are stored in plaintext")
	}

	// Create token manager
	tokens, err := token.NewJWTManager([]byte(cfg.JWTSecret), cfg.JWTTTL)
	if err != nil {
		logger.Fatal("failed to create token manager", zap.Error(err))
	}

	// Create stores
	users, items, closeStore, err := createStores(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create store", zap.Error(err))
	}
	defer closeStore()

	// Create pipeline and server
	p := pipeline.New(users, items, tokens, tokens, logger)
	srv := server.New(cfg, logger, p)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
		return 1
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		// Graceful shutdown
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// initLogger initializes a zap logger with the specified log level.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}

// createStores creates the credential and item stores for the configured
// backend. Both interfaces are currently served by one store instance.
func createStores(
	cfg *config.Config,
	logger *zap.Logger,
) (store.CredentialStore, store.ItemStore, func(), error) {
	codec := passwordCodec(cfg)

	switch cfg.StoreBackend {
	case "postgres":
		logger.Info("store backend: postgres")
		pg, err := store.NewPostgresStore(context.Background(), cfg.PostgresDSN, codec)
		if err != nil {
			return nil, nil, nil, err
		}
		closeStore := func() {
			if err := pg.Close(); err != nil {
				logger.Error("failed to close store", zap.Error(err))
			}
		}
		return pg, pg, closeStore, nil
	default:
		logger.Info("store backend: memory")
		mem := store.NewMemoryStore(codec)
		return mem, mem, func() {}, nil
	}
}

// passwordCodec selects the password codec from the configuration.
func passwordCodec(cfg *config.Config) password.Codec {
	if cfg.PasswordHashing {
		return password.Bcrypt{}
	}
	return password.Plain{}
}
