// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/codeblock/rest-service/internal/model"
)

// Store errors.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateLogin = errors.New("login already present")
	ErrEmptyUserID    = errors.New("user ID cannot be empty")
)

// CredentialStore defines the operations the pipeline needs for user
// credentials. Implementations must be safe for concurrent use.
type CredentialStore interface {
	// ExistsLogin reports whether any user has the given login.
	ExistsLogin(ctx context.Context, login string) (bool, error)

	// FindUser returns the user matching both login and password, or
	// ErrNotFound when no such user exists. Password matching is the
	// store's concern (see the password package).
	FindUser(ctx context.Context, login, password string) (*model.User, error)

	// CreateUser persists a new user and returns it with a generated ID.
	CreateUser(ctx context.Context, login, password string) (*model.User, error)
}

// ItemStore defines the operations the pipeline needs for items.
// Implementations must be safe for concurrent use.
type ItemStore interface {
	// CreateItem persists an item owned by the given user and returns the
	// generated item ID.
	CreateItem(ctx context.Context, title, userID string) (string, error)

	// ListItems returns the items owned by the given user in store-defined
	// order. The owning user id is excluded from the records.
	ListItems(ctx context.Context, userID string) ([]model.ItemRecord, error)
}
