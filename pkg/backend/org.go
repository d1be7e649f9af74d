package backend

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
)

// CreateOrg creates a new organization. The creator becomes its first owner
// and manager.
func (b *Backend) CreateOrg(ctx context.Context, name, description string) (proto.Org, error) {
	user, ok := proto.UserFromContext(ctx)
	if !ok {
		return nil, proto.ErrUnauthorized
	}

	var m models.Organization
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.CreateOrg(ctx, tx, name, description)
		if err != nil {
			return err
		}
		if err := b.store.GrantRole(ctx, tx, proto.KindOrg, m.ID, user, access.Owner); err != nil {
			return err
		}
		return b.store.GrantRole(ctx, tx, proto.KindOrg, m.ID, user, access.Manager)
	}); err != nil {
		return nil, err
	}

	b.logger.Debug("created organization", "org", m.ID, "user", user)
	return org{m}, nil
}

// GetOrg returns an organization by id.
func (b *Backend) GetOrg(ctx context.Context, id int64) (proto.Org, error) {
	m, err := b.store.GetOrgByID(ctx, b.db, id)
	if err != nil {
		return nil, wrapOrgErr(err)
	}
	return org{m}, nil
}

// UpdateOrg applies a partial update to an organization's profile.
func (b *Backend) UpdateOrg(ctx context.Context, id int64, opts store.OrgUpdate) (proto.Org, error) {
	if err := b.AuthorizeOrg(ctx, id, access.Update); err != nil {
		return nil, err
	}

	m, err := b.store.UpdateOrg(ctx, b.db, id, opts)
	if err != nil {
		return nil, wrapOrgErr(err)
	}
	return org{m}, nil
}

// DeleteOrg destroys an organization and every team that belongs to it,
// each through the full team cascade, all in one transaction.
func (b *Backend) DeleteOrg(ctx context.Context, id int64) error {
	if err := b.AuthorizeOrg(ctx, id, access.Delete); err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		for {
			teams, _, err := b.store.ListOrgTeams(ctx, tx, id, 1, 100)
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				break
			}
			for _, t := range teams {
				if err := b.store.DeleteTeamByID(ctx, tx, t.ID); err != nil {
					return err
				}
			}
		}
		return b.store.DeleteOrgByID(ctx, tx, id)
	}); err != nil {
		return wrapOrgErr(err)
	}

	b.logger.Debug("deleted organization", "org", id)
	return nil
}

// CreateOrgTeam creates a team inside an organization. Owners and managers
// may do this; the creator still becomes the team's first moderator.
func (b *Backend) CreateOrgTeam(ctx context.Context, orgID int64, name string, opts store.TeamUpdate) (proto.Team, error) {
	if err := b.AuthorizeOrg(ctx, orgID, access.Members); err != nil {
		return nil, err
	}

	user, _ := proto.UserFromContext(ctx)

	var m models.Team
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.CreateTeam(ctx, tx, name, opts)
		if err != nil {
			return err
		}
		if err := b.store.GrantRole(ctx, tx, proto.KindTeam, m.ID, user, access.Moderator); err != nil {
			return err
		}
		if err := b.store.GrantRole(ctx, tx, proto.KindTeam, m.ID, user, access.Member); err != nil {
			return err
		}
		return b.store.AddTeamToOrg(ctx, tx, orgID, m.ID)
	}); err != nil {
		return nil, err
	}

	return team{m}, nil
}

// AddTeamToOrg associates an existing team with an organization. The acting
// user must hold authority on both sides: moderate the team and own or
// manage the organization.
func (b *Backend) AddTeamToOrg(ctx context.Context, orgID, teamID int64) error {
	if err := b.AuthorizeOrg(ctx, orgID, access.Members); err != nil {
		return err
	}
	if err := b.AuthorizeTeam(ctx, teamID, access.Update); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.store.AddTeamToOrg(ctx, tx, orgID, teamID)
	})
}

// AddOrgOwner grants the owner role on an organization.
func (b *Backend) AddOrgOwner(ctx context.Context, orgID, user int64) error {
	if err := b.AuthorizeOrg(ctx, orgID, access.Update); err != nil {
		return err
	}
	return b.store.GrantRole(ctx, b.db, proto.KindOrg, orgID, user, access.Owner)
}

// RemoveOrgOwner revokes the owner role. Fails if the user is the last owner.
func (b *Backend) RemoveOrgOwner(ctx context.Context, orgID, user int64) error {
	if err := b.AuthorizeOrg(ctx, orgID, access.Update); err != nil {
		return err
	}
	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.store.RevokeRole(ctx, tx, proto.KindOrg, orgID, user, access.Owner)
	})
}

// AddOrgManager grants the manager role on an organization.
func (b *Backend) AddOrgManager(ctx context.Context, orgID, user int64) error {
	if err := b.AuthorizeOrg(ctx, orgID, access.Update); err != nil {
		return err
	}
	return b.store.GrantRole(ctx, b.db, proto.KindOrg, orgID, user, access.Manager)
}

// RemoveOrgManager revokes the manager role. Managers are not protected the
// way owners are, so this always succeeds.
func (b *Backend) RemoveOrgManager(ctx context.Context, orgID, user int64) error {
	if err := b.AuthorizeOrg(ctx, orgID, access.Update); err != nil {
		return err
	}
	return b.store.RevokeRole(ctx, b.db, proto.KindOrg, orgID, user, access.Manager)
}

// ListOrgTeams returns one page of an organization's teams.
func (b *Backend) ListOrgTeams(ctx context.Context, orgID int64, page, limit int) ([]proto.Team, Pagination, error) {
	if err := b.AuthorizeOrg(ctx, orgID, access.View); err != nil {
		return nil, Pagination{}, err
	}

	page, limit = b.clampPage(page, limit)
	ms, total, err := b.store.ListOrgTeams(ctx, b.db, orgID, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	var r []proto.Team
	for _, m := range ms {
		r = append(r, team{m})
	}
	return r, Pagination{Page: page, Limit: limit, Total: total}, nil
}

// ListOrgMembers returns one page of users holding any role on the
// organization.
func (b *Backend) ListOrgMembers(ctx context.Context, orgID int64, page, limit int) ([]int64, Pagination, error) {
	if err := b.AuthorizeOrg(ctx, orgID, access.View); err != nil {
		return nil, Pagination{}, err
	}

	page, limit = b.clampPage(page, limit)
	ids, total, err := b.store.ListOrgMembers(ctx, b.db, orgID, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return ids, Pagination{Page: page, Limit: limit, Total: total}, nil
}

// ListOrgManagers returns one page of the organization's managers.
func (b *Backend) ListOrgManagers(ctx context.Context, orgID int64, page, limit int) ([]int64, Pagination, error) {
	if err := b.AuthorizeOrg(ctx, orgID, access.View); err != nil {
		return nil, Pagination{}, err
	}

	page, limit = b.clampPage(page, limit)
	ids, total, err := b.store.ListOrgManagers(ctx, b.db, orgID, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return ids, Pagination{Page: page, Limit: limit, Total: total}, nil
}

// ListOrgOwners returns the organization's owners.
func (b *Backend) ListOrgOwners(ctx context.Context, orgID int64) ([]int64, error) {
	if err := b.AuthorizeOrg(ctx, orgID, access.View); err != nil {
		return nil, err
	}
	return b.store.ListHolders(ctx, b.db, proto.KindOrg, orgID, access.Owner)
}

type org struct {
	o models.Organization
}

var _ proto.Org = org{}

// ID implements proto.Org.
func (o org) ID() int64 {
	return o.o.ID
}

// Name implements proto.Org.
func (o org) Name() string {
	return o.o.Name
}

// Description implements proto.Org.
func (o org) Description() string {
	return o.o.Description.String
}
