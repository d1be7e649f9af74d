package models

import (
	"database/sql"
	"time"

	"github.com/developmentseed/osm-teams/pkg/access"
)

// Organization represents an organization in the system.
type Organization struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// OrganizationMember represents a role-typed member of an organization.
// A user may hold several roles on the same organization, one row per role.
type OrganizationMember struct {
	ID        int64       `db:"id"`
	OrgID     int64       `db:"org_id"`
	OsmID     int64       `db:"osm_id"`
	Role      access.Role `db:"role"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// OrganizationTeam associates a team with its parent organization.
// A team belongs to at most one organization.
type OrganizationTeam struct {
	ID        int64     `db:"id"`
	OrgID     int64     `db:"org_id"`
	TeamID    int64     `db:"team_id"`
	CreatedAt time.Time `db:"created_at"`
}
