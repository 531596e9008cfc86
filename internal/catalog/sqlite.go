package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS rooms (
	code       TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	admin_id   TEXT NOT NULL REFERENCES users(id),
	active     INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store is a sqlite-backed catalog. Message history is deliberately
// absent; only room metadata and user accounts are durable.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating catalog db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) CreateRoom(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO rooms (code, name, admin_id, active) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, query, room.Code, room.Name, room.AdminID, room.Active); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("error inserting room: %w", err)
	}
	return nil
}

func (s *Store) GetRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error) {
	query := `SELECT code, name, admin_id, active FROM rooms WHERE code = $1`
	var room domain.Room
	err := s.db.QueryRowContext(ctx, query, code).Scan(&room.Code, &room.Name, &room.AdminID, &room.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying room: %w", err)
	}
	return &room, nil
}

// DeleteRoom removes the record permanently. No history survives it.
func (s *Store) DeleteRoom(ctx context.Context, code domain.RoomCode) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	user, err := domain.NewUser(domain.UserID(uuid.NewString()), username)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Username, passwordHash); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return user, nil
}

// GetUserByName returns the identity and its stored password hash.
func (s *Store) GetUserByName(ctx context.Context, username string) (*domain.User, string, error) {
	query := `SELECT id, username, password_hash FROM users WHERE username = $1`
	var user domain.User
	var hash string
	err := s.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("error querying user: %w", err)
	}
	return &user, hash, nil
}

func isUniqueViolation(err error) bool {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqlErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
