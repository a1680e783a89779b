package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) interfaces.UserRepository {
	return &userRepository{q: db.Pool}
}

func newUserRepository(tx Queryable) interfaces.UserRepository {
	return &userRepository{q: tx}
}

// GetByID retrieves a user by id
func (r *userRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `
		SELECT id, username, registered_at
		FROM users
		WHERE id = $1`

	var user entities.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.RegisteredAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return &user, nil
}

// Create persists a new user
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING id, registered_at`

	err := r.q.QueryRow(ctx, query, user.Username).Scan(&user.ID, &user.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
