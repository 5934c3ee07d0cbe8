package config

import (
	"errors"
	"testing"
	"time"
)

// setRequiredEnv sets the minimum environment for Load() to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvJWTSecret, "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	setRequiredEnv(t)

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ServerPort != DefaultServerPort {
		t.Errorf("expected port %d, got %d", DefaultServerPort, cfg.ServerPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("expected shutdown timeout %v, got %v", DefaultShutdownTimeout, cfg.ShutdownTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("expected metrics enabled by default")
	}
	if cfg.StoreBackend != DefaultStoreBackend {
		t.Errorf("expected store backend %q, got %q", DefaultStoreBackend, cfg.StoreBackend)
	}
	if cfg.JWTTTL != DefaultJWTTTL {
		t.Errorf("expected JWT TTL %v, got %v", DefaultJWTTTL, cfg.JWTTTL)
	}
	if cfg.PasswordHashing {
		t.Error("password hashing must be off by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Arrange
	setRequiredEnv(t)
	t.Setenv(EnvServerPort, "9999")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvShutdownTimeout, "5s")
	t.Setenv(EnvMetricsEnabled, "false")
	t.Setenv(EnvStoreBackend, "postgres")
	t.Setenv(EnvPostgresDSN, "postgres://localhost/app")
	t.Setenv(EnvJWTTTL, "1h")
	t.Setenv(EnvPasswordHashing, "true")

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ServerPort != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected shutdown timeout 5s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("expected metrics disabled")
	}
	if cfg.StoreBackend != "postgres" {
		t.Errorf("expected store backend postgres, got %q", cfg.StoreBackend)
	}
	if cfg.PostgresDSN != "postgres://localhost/app" {
		t.Errorf("unexpected DSN: %q", cfg.PostgresDSN)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("expected JWT TTL 1h, got %v", cfg.JWTTTL)
	}
	if !cfg.PasswordHashing {
		t.Error("expected password hashing enabled")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", EnvServerPort, "not-a-number"},
		{"bad timeout", EnvShutdownTimeout, "soon"},
		{"bad metrics flag", EnvMetricsEnabled, "maybe"},
		{"bad ttl", EnvJWTTTL, "later"},
		{"bad hashing flag", EnvPasswordHashing, "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			// Act
			_, err := Load()

			// Assert
			if err == nil {
				t.Errorf("expected an error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:      8888,
			LogLevel:        "info",
			ShutdownTimeout: time.Second,
			StoreBackend:    "memory",
			JWTSecret:       "secret",
			JWTTTL:          time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"port too low", func(c *Config) { c.ServerPort = 0 }, ErrInvalidServerPort},
		{"port too high", func(c *Config) { c.ServerPort = 70000 }, ErrInvalidServerPort},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, ErrInvalidShutdownTimeout},
		{"unknown backend", func(c *Config) { c.StoreBackend = "mongo" }, ErrInvalidStoreBackend},
		{
			"postgres without dsn",
			func(c *Config) { c.StoreBackend = "postgres" },
			ErrMissingPostgresDSN,
		},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, ErrMissingJWTSecret},
		{"negative ttl", func(c *Config) { c.JWTTTL = -time.Hour }, ErrInvalidJWTTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg := valid()
			tt.mutate(cfg)

			// Act
			err := cfg.Validate()

			// Assert
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	// Arrange
	cfg := &Config{ServerPort: 8888}

	// Act / Assert
	if got := cfg.Address(); got != ":8888" {
		t.Errorf("expected :8888, got %q", got)
	}
}
