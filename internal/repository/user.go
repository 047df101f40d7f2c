package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geonews/geonews/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNameExists   = errors.New("name already exists")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user into the database.
// The unique constraints on name and email close the race between the
// application-level conflict checks and the insert; violations surface
// as ErrNameExists or ErrEmailExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (name, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.HashedPassword,
	).Scan(&user.ID)

	if err != nil {
		if pgErr := uniqueViolation(err); pgErr != nil {
			if pgErr.ConstraintName == "users_email_key" {
				return ErrEmailExists
			}
			return ErrNameExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByName retrieves a user by their exact name.
func (r *Repository) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	query := `
		SELECT id, name, email, hashed_password
		FROM users
		WHERE name = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, hashed_password
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}
