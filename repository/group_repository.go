package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type groupRepository struct {
	q Queryable
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *database.DB) interfaces.GroupRepository {
	return &groupRepository{q: db.Pool}
}

func newGroupRepository(tx Queryable) interfaces.GroupRepository {
	return &groupRepository{q: tx}
}

// GetByID retrieves a group by id
func (r *groupRepository) GetByID(ctx context.Context, id int64) (*entities.Group, error) {
	query := `
		SELECT id, name, created_at
		FROM groups
		WHERE id = $1`

	var group entities.Group
	err := r.q.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}

	return &group, nil
}

// Create persists a new group
func (r *groupRepository) Create(ctx context.Context, group *entities.Group) error {
	query := `
		INSERT INTO groups (name)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query, group.Name).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// AddMember adds a user to a group. Adding an existing member is a no-op.
func (r *groupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING`

	_, err := r.q.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to add user %d to group %d: %w", userID, groupID, err)
	}

	return nil
}

// IsMember reports whether the user belongs to the group
func (r *groupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_members
			WHERE group_id = $1 AND user_id = $2
		)`

	var member bool
	err := r.q.QueryRow(ctx, query, groupID, userID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("failed to check membership of user %d in group %d: %w", userID, groupID, err)
	}

	return member, nil
}
