package entities

import "time"

// User represents a registered contest participant. RegisteredAt is the
// final leaderboard tie-break key: earlier registrants rank higher.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	RegisteredAt time.Time `db:"registered_at"`
}
