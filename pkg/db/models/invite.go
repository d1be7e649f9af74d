package models

import "time"

// TeamInvite is a join invitation for a team.
type TeamInvite struct {
	Token     string    `db:"token"`
	TeamID    int64     `db:"team_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
