package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-screener/internal/types"
)

// UserRecord is the stored user row. Unlike types.User it carries the
// password hash, so it never leaves this layer or the auth service.
type UserRecord struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         types.ActorRole
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
type ErrEmailTaken struct {
	Email string
}

func (e *ErrEmailTaken) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// CreateUser inserts a user account and returns its ID
func (db *DB) CreateUser(ctx context.Context, name, email string, role types.ActorRole, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, string(role), passwordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, &ErrEmailTaken{Email: email}
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*UserRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*UserRecord, error) {
	var u UserRecord
	var role string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Role = types.ActorRole(role)
	return &u, nil
}
