package store

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
)

// Point is a longitude/latitude pair.
type Point struct {
	Lng float64
	Lat float64
}

// TeamUpdate holds the recognized fields of a partial team update.
// Nil fields are left unchanged; anything else a caller may send has no
// representation here and is therefore ignored.
type TeamUpdate struct {
	Name     *string
	Bio      *string
	Hashtag  *string
	Location *Point
	Private  *bool
}

// TeamFilter narrows a team listing.
type TeamFilter struct {
	// OsmID restricts the listing to teams the user is a member of.
	OsmID *int64

	// Name restricts the listing to teams with the exact name.
	Name *string

	// BBox restricts the listing to teams whose location falls within
	// west, south, east, north bounds. Validated by the caller before the
	// query runs.
	BBox []float64
}

// TeamStore is a store for teams.
type TeamStore interface {
	CreateTeam(ctx context.Context, h db.Handler, name string, opts TeamUpdate) (models.Team, error)
	GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error)
	UpdateTeam(ctx context.Context, h db.Handler, id int64, opts TeamUpdate) (models.Team, error)
	// DeleteTeamByID removes the team and every row referencing it:
	// members, moderators, tags, invites, attribute definitions, and its
	// organization association.
	DeleteTeamByID(ctx context.Context, h db.Handler, id int64) error
	ListTeams(ctx context.Context, h db.Handler, f TeamFilter) ([]models.Team, error)

	ListTeamTags(ctx context.Context, h db.Handler, team int64) ([]string, error)
	UpdateTeamTags(ctx context.Context, h db.Handler, team int64, tags []string) error
}
