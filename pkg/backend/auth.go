package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/proto"
)

// CanManage reports whether a user may perform the action on the entity.
// Unlike AuthorizeTeam and AuthorizeOrg it answers for any user id, not just
// the one on the context, and folds the denial into the boolean.
func (b *Backend) CanManage(ctx context.Context, user int64, kind proto.EntityKind, entityID int64, action access.Action) (bool, error) {
	ctx = proto.WithUserContext(ctx, user)

	var err error
	switch kind {
	case proto.KindTeam:
		err = b.AuthorizeTeam(ctx, entityID, action)
	case proto.KindOrg:
		err = b.AuthorizeOrg(ctx, entityID, action)
	default:
		return false, fmt.Errorf("%w: unknown entity kind %q", proto.ErrInvalidInput, kind)
	}

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, proto.ErrUnauthorized):
		return false, nil
	default:
		return false, err
	}
}

// AuthorizeTeam reports whether the acting user may perform the action on
// the team. Authority flows downward: organization owners hold full control
// over the organization's teams, managers everything but destruction.
func (b *Backend) AuthorizeTeam(ctx context.Context, teamID int64, action access.Action) error {
	team, err := b.store.GetTeamByID(ctx, b.db, teamID)
	if err != nil {
		return wrapTeamErr(err)
	}

	user, ok := proto.UserFromContext(ctx)
	if !ok {
		if action == access.View && !team.Private {
			return nil
		}
		return proto.ErrUnauthorized
	}

	moderator, err := b.store.HasRole(ctx, b.db, proto.KindTeam, teamID, user, access.Moderator)
	if err != nil {
		return err
	}
	if moderator {
		return nil
	}

	if org, ok, err := b.store.TeamOrg(ctx, b.db, teamID); err != nil {
		return err
	} else if ok {
		owner, err := b.store.HasRole(ctx, b.db, proto.KindOrg, org, user, access.Owner)
		if err != nil {
			return err
		}
		if owner {
			return nil
		}

		if action != access.Delete {
			manager, err := b.store.HasRole(ctx, b.db, proto.KindOrg, org, user, access.Manager)
			if err != nil {
				return err
			}
			if manager {
				return nil
			}
		}
	}

	if action == access.View {
		if !team.Private {
			return nil
		}
		member, err := b.store.HasRole(ctx, b.db, proto.KindTeam, teamID, user, access.Member)
		if err != nil {
			return err
		}
		if member {
			return nil
		}
	}

	return proto.ErrUnauthorized
}

// AuthorizeOrg reports whether the acting user may perform the action on the
// organization. Only owners may change or destroy an organization; viewing
// is open.
func (b *Backend) AuthorizeOrg(ctx context.Context, orgID int64, action access.Action) error {
	if _, err := b.store.GetOrgByID(ctx, b.db, orgID); err != nil {
		return wrapOrgErr(err)
	}

	if action == access.View {
		return nil
	}

	user, ok := proto.UserFromContext(ctx)
	if !ok {
		return proto.ErrUnauthorized
	}

	owner, err := b.store.HasRole(ctx, b.db, proto.KindOrg, orgID, user, access.Owner)
	if err != nil {
		return err
	}
	if owner {
		return nil
	}

	// Managers may add teams to the organization but nothing else.
	if action == access.Members {
		manager, err := b.store.HasRole(ctx, b.db, proto.KindOrg, orgID, user, access.Manager)
		if err != nil {
			return err
		}
		if manager {
			return nil
		}
	}

	return proto.ErrUnauthorized
}

// IsOrgOwner reports whether the user holds the owner role on the organization.
func (b *Backend) IsOrgOwner(ctx context.Context, orgID, user int64) (bool, error) {
	return b.store.HasRole(ctx, b.db, proto.KindOrg, orgID, user, access.Owner)
}

// IsOrgManager reports whether the user holds the manager role on the organization.
func (b *Backend) IsOrgManager(ctx context.Context, orgID, user int64) (bool, error) {
	return b.store.HasRole(ctx, b.db, proto.KindOrg, orgID, user, access.Manager)
}

// IsTeamModerator reports whether the user holds the moderator role on the team.
func (b *Backend) IsTeamModerator(ctx context.Context, teamID, user int64) (bool, error) {
	return b.store.HasRole(ctx, b.db, proto.KindTeam, teamID, user, access.Moderator)
}

// IsTeamMember reports whether the user holds the member role on the team.
func (b *Backend) IsTeamMember(ctx context.Context, teamID, user int64) (bool, error) {
	return b.store.HasRole(ctx, b.db, proto.KindTeam, teamID, user, access.Member)
}
