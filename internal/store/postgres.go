package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/codeblock/rest-service/internal/model"
	"github.com/codeblock/rest-service/internal/password"
	"github.com/codeblock/rest-service/internal/store/migrations"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// PostgresStore implements CredentialStore and ItemStore on PostgreSQL.
// Login uniqueness is enforced by a UNIQUE constraint, so a concurrent
// register racing past the existence check still surfaces as
// ErrDuplicateLogin instead of creating a second user.
type PostgresStore struct {
	db    *sql.DB
	codec password.Codec
}

// NewPostgresStore opens a connection pool for the given DSN, runs the
// embedded migrations, and returns the store.
func NewPostgresStore(ctx context.Context, dsn string, codec password.Codec) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &PostgresStore{db: db, codec: codec}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ExistsLogin reports whether any user has the given login.
func (s *PostgresStore) ExistsLogin(ctx context.Context, login string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, login).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists login: %w", err)
	}

	return exists, nil
}

// FindUser returns the user matching both login and password.
func (s *PostgresStore) FindUser(ctx context.Context, login, pass string) (*model.User, error) {
	const query = `SELECT id, login, password FROM users WHERE login = $1`

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, login).
		Scan(&user.ID, &user.Login, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.codec.Match(user.Password, pass) {
		return nil, ErrNotFound
	}

	return user, nil
}

// CreateUser persists a new user and returns it with a generated ID.
func (s *PostgresStore) CreateUser(ctx context.Context, login, pass string) (*model.User, error) {
	encoded, err := s.codec.Encode(pass)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	const query = `INSERT INTO users (id, login, password) VALUES ($1, $2, $3)`

	user := &model.User{
		ID:       uuid.New().String(),
		Login:    login,
		Password: encoded,
	}

	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Login, user.Password); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateLogin
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// CreateItem persists an item owned by the given user and returns the
// generated item ID.
func (s *PostgresStore) CreateItem(ctx context.Context, title, userID string) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}

	const query = `INSERT INTO items (id, title, user_id) VALUES ($1, $2, $3)`

	id := uuid.New().String()
	if _, err := s.db.ExecContext(ctx, query, id, title, userID); err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}

	return id, nil
}

// ListItems returns the items owned by the given user in insertion order.
func (s *PostgresStore) ListItems(ctx context.Context, userID string) ([]model.ItemRecord, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	const query = `SELECT id, title FROM items WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	records := make([]model.ItemRecord, 0)
	for rows.Next() {
		var rec model.ItemRecord
		if err := rows.Scan(&rec.ID, &rec.Title); err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return records, nil
}
