package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/config"
	"github.com/jonathan/talent-screener/internal/db"
	"github.com/jonathan/talent-screener/internal/types"
)

// UserStore is the persistence surface UserService needs. Reads return
// (nil, nil) for missing rows.
type UserStore interface {
	CreateUser(ctx context.Context, name, email string, role types.ActorRole, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*db.UserRecord, error)
}

// UserService provides business logic for user authentication operations
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// toAPIUser converts a stored user row to the API shape, dropping the
// password hash
func toAPIUser(record *db.UserRecord) *types.User {
	if record == nil {
		return nil
	}
	return &types.User{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Role:      record.Role,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// Register creates a new user account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, req.Name, req.Email, types.ActorRole(req.Role), passwordHash)
	if err != nil {
		if _, ok := err.(*db.ErrEmailTaken); ok {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	record, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return toAPIUser(record), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	record, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same generic error whether the user is missing or the password is
	// wrong; don't leak which emails are registered.
	if record == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, record.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toAPIUser(record), nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	record, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if record == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return toAPIUser(record), nil
}
