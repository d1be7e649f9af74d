package database

import (
	"context"
	"strings"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/developmentseed/osm-teams/pkg/utils"
)

var _ store.TeamStore = (*teamStore)(nil)

type teamStore struct{}

// CreateTeam implements store.TeamStore.
func (s *teamStore) CreateTeam(ctx context.Context, h db.Handler, name string, opts store.TeamUpdate) (models.Team, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.Team{}, err
	}

	var bio, hashtag interface{}
	if opts.Bio != nil {
		bio = *opts.Bio
	}
	if opts.Hashtag != nil {
		hashtag = *opts.Hashtag
	}
	var lng, lat interface{}
	if opts.Location != nil {
		lng, lat = opts.Location.Lng, opts.Location.Lat
	}
	var private bool
	if opts.Private != nil {
		private = *opts.Private
	}

	var id int64
	query := h.Rebind(`
		INSERT INTO
		  teams (name, bio, hashtag, location_lng, location_lat, private, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		RETURNING id;
	`)
	if err := h.GetContext(ctx, &id, query, name, bio, hashtag, lng, lat, private); err != nil {
		return models.Team{}, db.WrapError(err)
	}

	return s.GetTeamByID(ctx, h, id)
}

// GetTeamByID implements store.TeamStore.
func (*teamStore) GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error) {
	var m models.Team
	query := h.Rebind(`SELECT * FROM teams WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, db.WrapError(err)
}

// UpdateTeam implements store.TeamStore.
func (s *teamStore) UpdateTeam(ctx context.Context, h db.Handler, id int64, opts store.TeamUpdate) (models.Team, error) {
	// Fetch first so an unknown id fails with not-found rather than a
	// zero-row update.
	if _, err := s.GetTeamByID(ctx, h, id); err != nil {
		return models.Team{}, err
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}
	if opts.Name != nil {
		if err := utils.ValidateName(*opts.Name); err != nil {
			return models.Team{}, err
		}
		sets = append(sets, "name = ?")
		args = append(args, *opts.Name)
	}
	if opts.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *opts.Bio)
	}
	if opts.Hashtag != nil {
		sets = append(sets, "hashtag = ?")
		args = append(args, *opts.Hashtag)
	}
	if opts.Location != nil {
		sets = append(sets, "location_lng = ?", "location_lat = ?")
		args = append(args, opts.Location.Lng, opts.Location.Lat)
	}
	if opts.Private != nil {
		sets = append(sets, "private = ?")
		args = append(args, *opts.Private)
	}
	args = append(args, id)

	query := h.Rebind(`UPDATE teams SET ` + strings.Join(sets, ", ") + ` WHERE id = ?;`)
	if _, err := h.ExecContext(ctx, query, args...); err != nil {
		return models.Team{}, db.WrapError(err)
	}

	return s.GetTeamByID(ctx, h, id)
}

// DeleteTeamByID implements store.TeamStore.
func (s *teamStore) DeleteTeamByID(ctx context.Context, h db.Handler, id int64) error {
	if _, err := s.GetTeamByID(ctx, h, id); err != nil {
		return err
	}

	for _, query := range []string{
		`DELETE FROM team_invites WHERE team_id = ?;`,
		`DELETE FROM team_tags WHERE team_id = ?;`,
		`DELETE FROM team_moderators WHERE team_id = ?;`,
		`DELETE FROM team_members WHERE team_id = ?;`,
		`DELETE FROM organization_teams WHERE team_id = ?;`,
		`DELETE FROM teams WHERE id = ?;`,
	} {
		if _, err := h.ExecContext(ctx, h.Rebind(query), id); err != nil {
			return db.WrapError(err)
		}
	}

	query := h.Rebind(`DELETE FROM attribute_definitions WHERE owner_type = ? AND owner_id = ?;`)
	if _, err := h.ExecContext(ctx, query, proto.KindTeam.String(), id); err != nil {
		return db.WrapError(err)
	}

	return nil
}

// ListTeams implements store.TeamStore.
func (*teamStore) ListTeams(ctx context.Context, h db.Handler, f store.TeamFilter) ([]models.Team, error) {
	query := `SELECT t.* FROM teams t`
	var where []string
	var args []interface{}

	if f.OsmID != nil {
		query += ` JOIN team_members tm ON tm.team_id = t.id`
		where = append(where, `tm.osm_id = ?`)
		args = append(args, *f.OsmID)
	}
	if f.Name != nil {
		where = append(where, `t.name = ?`)
		args = append(args, *f.Name)
	}
	if len(f.BBox) == 4 {
		where = append(where,
			`t.location_lng IS NOT NULL`,
			`t.location_lng >= ?`, `t.location_lat >= ?`,
			`t.location_lng <= ?`, `t.location_lat <= ?`,
		)
		args = append(args, f.BBox[0], f.BBox[1], f.BBox[2], f.BBox[3])
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY t.id;`

	var m []models.Team
	err := h.SelectContext(ctx, &m, h.Rebind(query), args...)
	return m, db.WrapError(err)
}

// ListTeamTags implements store.TeamStore.
func (*teamStore) ListTeamTags(ctx context.Context, h db.Handler, team int64) ([]string, error) {
	var tags []string
	query := h.Rebind(`SELECT tag FROM team_tags WHERE team_id = ? ORDER BY tag;`)
	err := h.SelectContext(ctx, &tags, query, team)
	return tags, db.WrapError(err)
}

// UpdateTeamTags implements store.TeamStore.
//
// The new set replaces the old one wholesale.
func (*teamStore) UpdateTeamTags(ctx context.Context, h db.Handler, team int64, tags []string) error {
	query := h.Rebind(`DELETE FROM team_tags WHERE team_id = ?;`)
	if _, err := h.ExecContext(ctx, query, team); err != nil {
		return db.WrapError(err)
	}

	query = h.Rebind(`
		INSERT INTO
		  team_tags (team_id, tag)
		VALUES
		  (?, ?)
		ON CONFLICT DO NOTHING;
	`)
	for _, tag := range tags {
		if _, err := h.ExecContext(ctx, query, team, tag); err != nil {
			return db.WrapError(err)
		}
	}

	return nil
}
