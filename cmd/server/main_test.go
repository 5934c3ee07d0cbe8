package main

import (
	"testing"

	"go.uber.org/zap"

	"github.com/codeblock/rest-service/internal/config"
	"github.com/codeblock/rest-service/internal/password"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level defaults to info", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			logger, err := initLogger(tt.level)

			// Assert
			if err != nil {
				t.Fatalf("initLogger() error = %v", err)
			}
			if logger == nil {
				t.Error("initLogger() returned nil logger")
			}
		})
	}
}

func TestPasswordCodec(t *testing.T) {
	// Arrange / Act / Assert
	if _, ok := passwordCodec(&config.Config{}).(password.Plain); !ok {
		t.Error("expected the plain codec by default")
	}
	if _, ok := passwordCodec(&config.Config{PasswordHashing: true}).(password.Bcrypt); !ok {
		t.Error("expected the bcrypt codec when hashing is enabled")
	}
}

func TestCreateStores_Memory(t *testing.T) {
	// Arrange
	cfg := &config.Config{StoreBackend: "memory"}

	// Act
	users, items, closeStore, err := createStores(cfg, zap.NewNop())

	// Assert
	if err != nil {
		t.Fatalf("createStores() error = %v", err)
	}
	defer closeStore()
	if users == nil || items == nil {
		t.Error("createStores() returned nil stores")
	}
}
