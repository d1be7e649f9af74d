package database

import (
	"context"
	"errors"
	"strings"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/developmentseed/osm-teams/pkg/utils"
)

var _ store.OrgStore = (*orgStore)(nil)

type orgStore struct{}

// CreateOrg implements store.OrgStore.
func (s *orgStore) CreateOrg(ctx context.Context, h db.Handler, name, description string) (models.Organization, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.Organization{}, err
	}

	var desc interface{}
	if description != "" {
		desc = description
	}

	var id int64
	query := h.Rebind(`
		INSERT INTO
		  organizations (name, description, updated_at)
		VALUES
		  (?, ?, CURRENT_TIMESTAMP)
		RETURNING id;
	`)
	if err := h.GetContext(ctx, &id, query, name, desc); err != nil {
		return models.Organization{}, db.WrapError(err)
	}

	return s.GetOrgByID(ctx, h, id)
}

// GetOrgByID implements store.OrgStore.
func (*orgStore) GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error) {
	var m models.Organization
	query := h.Rebind(`SELECT * FROM organizations WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, db.WrapError(err)
}

// UpdateOrg implements store.OrgStore.
func (s *orgStore) UpdateOrg(ctx context.Context, h db.Handler, id int64, opts store.OrgUpdate) (models.Organization, error) {
	if _, err := s.GetOrgByID(ctx, h, id); err != nil {
		return models.Organization{}, err
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}
	if opts.Name != nil {
		if err := utils.ValidateName(*opts.Name); err != nil {
			return models.Organization{}, err
		}
		sets = append(sets, "name = ?")
		args = append(args, *opts.Name)
	}
	if opts.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *opts.Description)
	}
	args = append(args, id)

	query := h.Rebind(`UPDATE organizations SET ` + strings.Join(sets, ", ") + ` WHERE id = ?;`)
	if _, err := h.ExecContext(ctx, query, args...); err != nil {
		return models.Organization{}, db.WrapError(err)
	}

	return s.GetOrgByID(ctx, h, id)
}

// DeleteOrgByID implements store.OrgStore.
func (s *orgStore) DeleteOrgByID(ctx context.Context, h db.Handler, id int64) error {
	if _, err := s.GetOrgByID(ctx, h, id); err != nil {
		return err
	}

	for _, query := range []string{
		`DELETE FROM organization_members WHERE org_id = ?;`,
		`DELETE FROM organization_teams WHERE org_id = ?;`,
		`DELETE FROM organizations WHERE id = ?;`,
	} {
		if _, err := h.ExecContext(ctx, h.Rebind(query), id); err != nil {
			return db.WrapError(err)
		}
	}

	query := h.Rebind(`DELETE FROM attribute_definitions WHERE owner_type = ? AND owner_id = ?;`)
	if _, err := h.ExecContext(ctx, query, proto.KindOrg.String(), id); err != nil {
		return db.WrapError(err)
	}

	return nil
}

// AddTeamToOrg implements store.OrgStore.
func (s *orgStore) AddTeamToOrg(ctx context.Context, h db.Handler, org, team int64) error {
	if _, ok, err := s.TeamOrg(ctx, h, team); err != nil {
		return err
	} else if ok {
		return proto.ErrTeamHasOrg
	}

	query := h.Rebind(`
		INSERT INTO
		  organization_teams (org_id, team_id)
		VALUES
		  (?, ?);
	`)
	_, err := h.ExecContext(ctx, query, org, team)
	if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
		// Lost a race with a concurrent association.
		return proto.ErrTeamHasOrg
	}

	return db.WrapError(err)
}

// TeamOrg implements store.OrgStore.
func (*orgStore) TeamOrg(ctx context.Context, h db.Handler, team int64) (int64, bool, error) {
	var org int64
	query := h.Rebind(`SELECT org_id FROM organization_teams WHERE team_id = ?;`)
	if err := h.GetContext(ctx, &org, query, team); err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, db.WrapError(err)
	}
	return org, true, nil
}

// ListOrgTeams implements store.OrgStore.
func (*orgStore) ListOrgTeams(ctx context.Context, h db.Handler, org int64, page, limit int) ([]models.Team, int64, error) {
	var total int64
	query := h.Rebind(`SELECT COUNT(*) FROM organization_teams WHERE org_id = ?;`)
	if err := h.GetContext(ctx, &total, query, org); err != nil {
		return nil, 0, db.WrapError(err)
	}

	var m []models.Team
	query = h.Rebind(`
		SELECT t.*
		FROM teams t
		JOIN organization_teams ot ON ot.team_id = t.id
		WHERE ot.org_id = ?
		ORDER BY t.id
		LIMIT ? OFFSET ?;
	`)
	err := h.SelectContext(ctx, &m, query, org, limit, (page-1)*limit)
	return m, total, db.WrapError(err)
}

// ListOrgMembers implements store.OrgStore.
func (*orgStore) ListOrgMembers(ctx context.Context, h db.Handler, org int64, page, limit int) ([]int64, int64, error) {
	var total int64
	query := h.Rebind(`SELECT COUNT(DISTINCT osm_id) FROM organization_members WHERE org_id = ?;`)
	if err := h.GetContext(ctx, &total, query, org); err != nil {
		return nil, 0, db.WrapError(err)
	}

	var ids []int64
	query = h.Rebind(`
		SELECT DISTINCT osm_id
		FROM organization_members
		WHERE org_id = ?
		ORDER BY osm_id
		LIMIT ? OFFSET ?;
	`)
	err := h.SelectContext(ctx, &ids, query, org, limit, (page-1)*limit)
	return ids, total, db.WrapError(err)
}

// ListOrgManagers implements store.OrgStore.
func (*orgStore) ListOrgManagers(ctx context.Context, h db.Handler, org int64, page, limit int) ([]int64, int64, error) {
	var total int64
	query := h.Rebind(`SELECT COUNT(*) FROM organization_members WHERE org_id = ? AND role = ?;`)
	if err := h.GetContext(ctx, &total, query, org, access.Manager); err != nil {
		return nil, 0, db.WrapError(err)
	}

	var ids []int64
	query = h.Rebind(`
		SELECT osm_id
		FROM organization_members
		WHERE org_id = ? AND role = ?
		ORDER BY osm_id
		LIMIT ? OFFSET ?;
	`)
	err := h.SelectContext(ctx, &ids, query, org, access.Manager, limit, (page-1)*limit)
	return ids, total, db.WrapError(err)
}
