package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/codeblock/rest-service/internal/model"
	"github.com/codeblock/rest-service/internal/password"
)

// MemoryStore implements CredentialStore and ItemStore with in-memory maps.
type MemoryStore struct {
	mu    sync.RWMutex
	codec password.Codec
	users map[string]model.User // keyed by user ID
	items map[string]model.Item // keyed by item ID
	order []string              // item IDs in insertion order
}

// NewMemoryStore creates a new MemoryStore instance using the given
// password codec.
func NewMemoryStore(codec password.Codec) *MemoryStore {
	return &MemoryStore{
		codec: codec,
		users: make(map[string]model.User),
		items: make(map[string]model.Item),
	}
}

// ExistsLogin reports whether any user has the given login.
func (s *MemoryStore) ExistsLogin(ctx context.Context, login string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("exists login: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Login == login {
			return true, nil
		}
	}

	return false, nil
}

// FindUser returns the user matching both login and password.
func (s *MemoryStore) FindUser(ctx context.Context, login, pass string) (*model.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("find user: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Login == login && s.codec.Match(u.Password, pass) {
			found := u
			return &found, nil
		}
	}

	return nil, ErrNotFound
}

// CreateUser persists a new user and returns it with a generated ID.
func (s *MemoryStore) CreateUser(ctx context.Context, login, pass string) (*model.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create user: %w", ctx.Err())
	default:
	}

	encoded, err := s.codec.Encode(pass)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Login == login {
			return nil, ErrDuplicateLogin
		}
	}

	user := model.User{
		ID:       uuid.New().String(),
		Login:    login,
		Password: encoded,
	}
	s.users[user.ID] = user

	return &user, nil
}

// CreateItem persists an item owned by the given user and returns the
// generated item ID.
func (s *MemoryStore) CreateItem(ctx context.Context, title, userID string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if userID == "" {
		return "", ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.Item{
		ID:     uuid.New().String(),
		Title:  title,
		UserID: userID,
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)

	return item.ID, nil
}

// ListItems returns the items owned by the given user in insertion order.
func (s *MemoryStore) ListItems(ctx context.Context, userID string) ([]model.ItemRecord, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.ItemRecord, 0)
	for _, id := range s.order {
		if item := s.items[id]; item.UserID == userID {
			records = append(records, item.Record())
		}
	}

	return records, nil
}
