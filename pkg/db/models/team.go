package models

import (
	"database/sql"
	"time"
)

// Team represents a team.
type Team struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Bio       sql.NullString  `db:"bio"`
	Hashtag   sql.NullString  `db:"hashtag"`
	Lng       sql.NullFloat64 `db:"location_lng"`
	Lat       sql.NullFloat64 `db:"location_lat"`
	Private   bool            `db:"private"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// TeamMember represents a member of a team.
type TeamMember struct {
	ID        int64     `db:"id"`
	TeamID    int64     `db:"team_id"`
	OsmID     int64     `db:"osm_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamModerator represents a moderator of a team.
type TeamModerator struct {
	ID        int64     `db:"id"`
	TeamID    int64     `db:"team_id"`
	OsmID     int64     `db:"osm_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamTag represents a tag on a team.
type TeamTag struct {
	ID     int64  `db:"id"`
	TeamID int64  `db:"team_id"`
	Tag    string `db:"tag"`
}
