package entities

import "time"

// Group represents a named contest context. Predictions and leaderboards
// are always scoped to a group.
type Group struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	GroupID  int64     `db:"group_id"`
	UserID   int64     `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}
