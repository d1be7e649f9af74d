package backend

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/developmentseed/osm-teams/pkg/utils"
)

// CreateTeam creates a new team. The creator becomes its first moderator,
// and moderators are always members.
func (b *Backend) CreateTeam(ctx context.Context, name string, opts store.TeamUpdate) (proto.Team, error) {
	user, ok := proto.UserFromContext(ctx)
	if !ok {
		return nil, proto.ErrUnauthorized
	}

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
		return b.store.GrantRole(ctx, tx, proto.KindTeam, m.ID, user, access.Member)
	}); err != nil {
		return nil, err
	}

	b.logger.Debug("created team", "team", m.ID, "user", user)
	return team{m}, nil
}

// GetTeam returns a team by id.
func (b *Backend) GetTeam(ctx context.Context, id int64) (proto.Team, error) {
	if err := b.AuthorizeTeam(ctx, id, access.View); err != nil {
		return nil, err
	}

	m, err := b.store.GetTeamByID(ctx, b.db, id)
	if err != nil {
		return nil, wrapTeamErr(err)
	}
	return team{m}, nil
}

// UpdateTeam applies a partial update to a team's profile.
func (b *Backend) UpdateTeam(ctx context.Context, id int64, opts store.TeamUpdate) (proto.Team, error) {
	if err := b.AuthorizeTeam(ctx, id, access.Update); err != nil {
		return nil, err
	}

	m, err := b.store.UpdateTeam(ctx, b.db, id, opts)
	if err != nil {
		return nil, wrapTeamErr(err)
	}
	return team{m}, nil
}

// DeleteTeam destroys a team along with its memberships, moderators, tags,
// invitations, attribute definitions, and organization association.
func (b *Backend) DeleteTeam(ctx context.Context, id int64) error {
	if err := b.AuthorizeTeam(ctx, id, access.Delete); err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.store.DeleteTeamByID(ctx, tx, id)
	}); err != nil {
		return wrapTeamErr(err)
	}

	b.logger.Debug("deleted team", "team", id)
	return nil
}

// ListTeams lists teams matching the filter. The bounding box is validated
// before any query runs.
func (b *Backend) ListTeams(ctx context.Context, f store.TeamFilter) ([]proto.Team, error) {
	if err := utils.ValidateBBox(f.BBox); err != nil {
		return nil, err
	}

	ms, err := b.store.ListTeams(ctx, b.db, f)
	if err != nil {
		return nil, err
	}

	var r []proto.Team
	for _, m := range ms {
		r = append(r, team{m})
	}
	return r, nil
}

// AddTeamMember adds a user to the team. Adding an existing member is a
// no-op.
func (b *Backend) AddTeamMember(ctx context.Context, teamID, user int64) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return err
	}

	return b.store.GrantRole(ctx, b.db, proto.KindTeam, teamID, user, access.Member)
}

// RemoveTeamMember removes a user from the team. A member who moderates the
// team loses the moderator role as well, which fails if they are the last
// moderator. Removing a non-member is a no-op.
func (b *Backend) RemoveTeamMember(ctx context.Context, teamID, user int64) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.removeTeamMember(ctx, tx, teamID, user)
	})
}

func (b *Backend) removeTeamMember(ctx context.Context, tx *db.Tx, teamID, user int64) error {
	if err := b.store.RevokeRole(ctx, tx, proto.KindTeam, teamID, user, access.Moderator); err != nil {
		return err
	}
	return b.store.RevokeRole(ctx, tx, proto.KindTeam, teamID, user, access.Member)
}

// UpdateTeamMembers applies a batch of membership changes in one
// transaction, additions before removals. A user in both lists ends up
// removed. If any change fails nothing is applied.
func (b *Backend) UpdateTeamMembers(ctx context.Context, teamID int64, add, remove []int64) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		for _, user := range add {
			if err := b.store.GrantRole(ctx, tx, proto.KindTeam, teamID, user, access.Member); err != nil {
				return err
			}
		}
		for _, user := range remove {
			if err := b.removeTeamMember(ctx, tx, teamID, user); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignModerator promotes a user to team moderator, adding them as a member
// first if needed.
func (b *Backend) AssignModerator(ctx context.Context, teamID, user int64) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.store.GrantRole(ctx, tx, proto.KindTeam, teamID, user, access.Member); err != nil {
			return err
		}
		return b.store.GrantRole(ctx, tx, proto.KindTeam, teamID, user, access.Moderator)
	})
}

// RemoveModerator demotes a moderator back to plain member. Fails if they
// are the team's last moderator.
func (b *Backend) RemoveModerator(ctx context.Context, teamID, user int64) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.store.RevokeRole(ctx, tx, proto.KindTeam, teamID, user, access.Moderator)
	})
}

// TeamMembers returns the team's member and moderator id lists.
func (b *Backend) TeamMembers(ctx context.Context, teamID int64) (members, moderators []int64, err error) {
	if err := b.AuthorizeTeam(ctx, teamID, access.View); err != nil {
		return nil, nil, err
	}

	members, err = b.store.ListHolders(ctx, b.db, proto.KindTeam, teamID, access.Member)
	if err != nil {
		return nil, nil, err
	}
	moderators, err = b.store.ListHolders(ctx, b.db, proto.KindTeam, teamID, access.Moderator)
	if err != nil {
		return nil, nil, err
	}
	return members, moderators, nil
}

// TeamTags returns the team's tags.
func (b *Backend) TeamTags(ctx context.Context, teamID int64) ([]string, error) {
	if err := b.AuthorizeTeam(ctx, teamID, access.View); err != nil {
		return nil, err
	}
	return b.store.ListTeamTags(ctx, b.db, teamID)
}

// UpdateTeamTags replaces the team's tags.
func (b *Backend) UpdateTeamTags(ctx context.Context, teamID int64, tags []string) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Update); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.store.UpdateTeamTags(ctx, tx, teamID, tags)
	})
}

type team struct {
	t models.Team
}

var _ proto.Team = team{}

// ID implements proto.Team.
func (t team) ID() int64 {
	return t.t.ID
}

// Name implements proto.Team.
func (t team) Name() string {
	return t.t.Name
}

// Bio implements proto.Team.
func (t team) Bio() string {
	return t.t.Bio.String
}

// Hashtag implements proto.Team.
func (t team) Hashtag() string {
	return t.t.Hashtag.String
}

// Location implements proto.Team.
func (t team) Location() (lng, lat float64, ok bool) {
	if !t.t.Lng.Valid || !t.t.Lat.Valid {
		return 0, 0, false
	}
	return t.t.Lng.Float64, t.t.Lat.Float64, true
}

// IsPrivate implements proto.Team.
func (t team) IsPrivate() bool {
	return t.t.Private
}
