package store

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
)

// RoleStore is the role ledger: the single source of truth for who holds
// which role on which entity. Team membership, team moderators, and
// organization roles all go through it so the invariant checks live in one
// place.
type RoleStore interface {
	// GrantRole records a role. Granting an already-held role is a no-op.
	GrantRole(ctx context.Context, h db.Handler, kind proto.EntityKind, entity, user int64, role access.Role) error
	// RevokeRole removes a role. Revoking the last moderator of a team or
	// the last owner of an organization fails with ErrLastModerator or
	// ErrLastOwner. Revoking a role the user does not hold is a no-op.
	// Revocations of those two roles lock the team or organization row
	// and must run on a transaction handle so the lock holds until commit.
	RevokeRole(ctx context.Context, h db.Handler, kind proto.EntityKind, entity, user int64, role access.Role) error
	// HasRole reports whether the user holds the role on the entity.
	HasRole(ctx context.Context, h db.Handler, kind proto.EntityKind, entity, user int64, role access.Role) (bool, error)
	// ListRoles returns every (user, role) pair on the entity.
	ListRoles(ctx context.Context, h db.Handler, kind proto.EntityKind, entity int64) ([]models.RoleAssignment, error)
	// ListHolders returns the users holding the role on the entity.
	ListHolders(ctx context.Context, h db.Handler, kind proto.EntityKind, entity int64, role access.Role) ([]int64, error)
}
