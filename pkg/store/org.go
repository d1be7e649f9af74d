package store

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
)

// OrgUpdate holds the recognized fields of a partial organization update.
type OrgUpdate struct {
	Name        *string
	Description *string
}

// OrgStore is a store for organizations.
type OrgStore interface {
	CreateOrg(ctx context.Context, h db.Handler, name, description string) (models.Organization, error)
	GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error)
	UpdateOrg(ctx context.Context, h db.Handler, id int64, opts OrgUpdate) (models.Organization, error)
	// DeleteOrgByID removes the organization, its role rows, and its team
	// associations. Dependent teams are destroyed by the caller through the
	// team store's delete path first.
	DeleteOrgByID(ctx context.Context, h db.Handler, id int64) error

	// AddTeamToOrg associates an existing team with an organization.
	// A team belongs to at most one organization.
	AddTeamToOrg(ctx context.Context, h db.Handler, org, team int64) error
	// TeamOrg returns the id of the organization the team belongs to, if any.
	TeamOrg(ctx context.Context, h db.Handler, team int64) (int64, bool, error)
	// ListOrgTeams returns one page of the organization's teams and the
	// total count.
	ListOrgTeams(ctx context.Context, h db.Handler, org int64, page, limit int) ([]models.Team, int64, error)
	// ListOrgMembers returns one page of users holding any role on the
	// organization and the total count of distinct users.
	ListOrgMembers(ctx context.Context, h db.Handler, org int64, page, limit int) ([]int64, int64, error)
	// ListOrgManagers returns one page of users holding the manager role.
	ListOrgManagers(ctx context.Context, h db.Handler, org int64, page, limit int) ([]int64, int64, error)
}
