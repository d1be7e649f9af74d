package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
)

var _ store.RoleStore = (*roleStore)(nil)

type roleStore struct{}

// roleTarget describes which table backs a (kind, role) pair. Organization
// roles share one role-typed table, team roles get a table each, but every
// ledger operation resolves through here so the logic is written once.
type roleTarget struct {
	table     string
	entityCol string
	parent    string
	typed     bool
	guarded   bool
}

func target(kind proto.EntityKind, role access.Role) (roleTarget, error) {
	switch {
	case kind == proto.KindTeam && role == access.Member:
		return roleTarget{table: "team_members", entityCol: "team_id", parent: "teams"}, nil
	case kind == proto.KindTeam && role == access.Moderator:
		return roleTarget{table: "team_moderators", entityCol: "team_id", parent: "teams", guarded: true}, nil
	case kind == proto.KindOrg && role == access.Owner:
		return roleTarget{table: "organization_members", entityCol: "org_id", parent: "organizations", typed: true, guarded: true}, nil
	case kind == proto.KindOrg && role == access.Manager:
		return roleTarget{table: "organization_members", entityCol: "org_id", parent: "organizations", typed: true}, nil
	default:
		return roleTarget{}, fmt.Errorf("%w: role %q does not apply to %s entities", proto.ErrInvalidInput, role, kind)
	}
}

// GrantRole implements store.RoleStore.
func (*roleStore) GrantRole(ctx context.Context, h db.Handler, kind proto.EntityKind, entity, user int64, role access.Role) error {
	t, err := target(kind, role)
	if err != nil {
		return err
	}

	if t.typed {
		query := h.Rebind(`
			INSERT INTO
			  ` + t.table + ` (` + t.entityCol + `, osm_id, role, updated_at)
			VALUES
			  (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT DO NOTHING;
		`)
		_, err = h.ExecContext(ctx, query, entity, user, role)
		return db.WrapError(err)
	}

	query := h.Rebind(`
		INSERT INTO
		  ` + t.table + ` (` + t.entityCol + `, osm_id, updated_at)
		VALUES
		  (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT DO NOTHING;
	`)
	_, err = h.ExecContext(ctx, query, entity, user)
	return db.WrapError(err)
}

// RevokeRole implements store.RoleStore.
//
// For guarded roles the delete statement re-checks the holder count, and the
// parent entity row is locked first so concurrent revocations of different
// holders cannot each count the other as remaining. The loser sees zero rows
// affected. Callers run guarded revocations inside a transaction so the lock
// spans the count and the delete.
func (s *roleStore) RevokeRole(ctx context.Context, h db.Handler, kind proto.EntityKind, entity, user int64, role access.Role) error {
	t, err := target(kind, role)
	if err != nil {
		return err
	}

	if t.guarded && h.DriverName() == "postgres" {
		// Two revocations targeting different holders delete disjoint
		// rows and take no conflicting row locks, so under READ
		// COMMITTED both count subqueries could see a safe count.
		// Sqlite's single writer serializes them without this.
		// A missing parent has no role rows either, so ErrNoRows falls
		// through to the delete, which is then a no-op.
		var id int64
		lock := h.Rebind(`SELECT id FROM ` + t.parent + ` WHERE id = ? FOR UPDATE;`)
		if err := h.GetContext(ctx, &id, lock, entity); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return db.WrapError(err)
		}
	}

	var query string
	var args []interface{}
	switch {
	case t.guarded && t.typed:
		query = `
			DELETE FROM ` + t.table + `
			WHERE
			  ` + t.entityCol + ` = ?
			  AND osm_id = ?
			  AND role = ?
			  AND (SELECT COUNT(*) FROM ` + t.table + ` WHERE ` + t.entityCol + ` = ? AND role = ?) > 1;
		`
		args = []interface{}{entity, user, role, entity, role}
	case t.guarded:
		query = `
			DELETE FROM ` + t.table + `
			WHERE
			  ` + t.entityCol + ` = ?
			  AND osm_id = ?
			  AND (SELECT COUNT(*) FROM ` + t.table + ` WHERE ` + t.entityCol + ` = ?) > 1;
		`
		args = []interface{}{entity, user, entity}
	case t.typed:
		query = `
			DELETE FROM ` + t.table + `
			WHERE
			  ` + t.entityCol + ` = ?
			  AND osm_id = ?
			  AND role = ?;
		`
		args = []interface{}{entity, user, role}
	default:
		query = `
			DELETE FROM ` + t.table + `
			WHERE
			  ` + t.entityCol + ` = ?
			  AND osm_id = ?;
		`
		args = []interface{}{entity, user}
	}

	r, err := h.ExecContext(ctx, h.Rebind(query), args...)
	if err != nil {
		return db.WrapError(err)
	}

	n, err := r.RowsAffected()
	if err != nil {
		return db.WrapError(err)
	}

	if n == 0 && t.guarded {
		// Either the user never held the role (a no-op) or they are the
		// last holder and the guard refused the delete.
		held, err := s.HasRole(ctx, h, kind, entity, user, role)
		if err != nil {
			return err
		}
		if held {
			if role == access.Owner {
				return proto.ErrLastOwner
			}
			return proto.ErrLastModerator
		}
	}

	return nil
}

// HasRole implements store.RoleStore.
func (*roleStore) HasRole(ctx context.Context, h db.Handler, kind proto.EntityKind, entity, user int64, role access.Role) (bool, error) {
	t, err := target(kind, role)
	if err != nil {
		return false, err
	}

	query := `SELECT COUNT(*) FROM ` + t.table + ` WHERE ` + t.entityCol + ` = ? AND osm_id = ?`
	args := []interface{}{entity, user}
	if t.typed {
		query += ` AND role = ?`
		args = append(args, role)
	}

	var count int64
	if err := h.GetContext(ctx, &count, h.Rebind(query), args...); err != nil {
		return false, db.WrapError(err)
	}

	return count > 0, nil
}

// ListRoles implements store.RoleStore.
func (*roleStore) ListRoles(ctx context.Context, h db.Handler, kind proto.EntityKind, entity int64) ([]models.RoleAssignment, error) {
	var m []models.RoleAssignment
	switch kind {
	case proto.KindTeam:
		query := h.Rebind(`
			SELECT osm_id, ? AS role FROM team_members WHERE team_id = ?
			UNION ALL
			SELECT osm_id, ? AS role FROM team_moderators WHERE team_id = ?;
		`)
		err := h.SelectContext(ctx, &m, query, access.Member, entity, access.Moderator, entity)
		return m, db.WrapError(err)
	case proto.KindOrg:
		query := h.Rebind(`
			SELECT osm_id, role FROM organization_members WHERE org_id = ?;
		`)
		err := h.SelectContext(ctx, &m, query, entity)
		return m, db.WrapError(err)
	default:
		return nil, fmt.Errorf("%w: unknown entity kind", proto.ErrInvalidInput)
	}
}

// ListHolders implements store.RoleStore.
func (*roleStore) ListHolders(ctx context.Context, h db.Handler, kind proto.EntityKind, entity int64, role access.Role) ([]int64, error) {
	t, err := target(kind, role)
	if err != nil {
		return nil, err
	}

	query := `SELECT osm_id FROM ` + t.table + ` WHERE ` + t.entityCol + ` = ?`
	args := []interface{}{entity}
	if t.typed {
		query += ` AND role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY osm_id`

	var ids []int64
	err = h.SelectContext(ctx, &ids, h.Rebind(query), args...)
	return ids, db.WrapError(err)
}
