package database

import (
	"context"
	"time"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/store"
)

var _ store.InviteStore = (*inviteStore)(nil)

type inviteStore struct{}

// CreateInvite implements store.InviteStore.
func (*inviteStore) CreateInvite(ctx context.Context, h db.Handler, inv models.TeamInvite) error {
	query := h.Rebind(`
		INSERT INTO
		  team_invites (token, team_id, expires_at)
		VALUES
		  (?, ?, ?);
	`)
	_, err := h.ExecContext(ctx, query, inv.Token, inv.TeamID, inv.ExpiresAt)
	return db.WrapError(err)
}

// GetInvite implements store.InviteStore.
func (*inviteStore) GetInvite(ctx context.Context, h db.Handler, token string) (models.TeamInvite, error) {
	var m models.TeamInvite
	query := h.Rebind(`SELECT * FROM team_invites WHERE token = ?;`)
	err := h.GetContext(ctx, &m, query, token)
	return m, db.WrapError(err)
}

// DeleteInvite implements store.InviteStore.
func (*inviteStore) DeleteInvite(ctx context.Context, h db.Handler, token string) error {
	query := h.Rebind(`DELETE FROM team_invites WHERE token = ?;`)
	r, err := h.ExecContext(ctx, query, token)
	if err != nil {
		return db.WrapError(err)
	}

	if n, err := r.RowsAffected(); err == nil && n == 0 {
		return db.ErrRecordNotFound
	}

	return nil
}

// ListTeamInvites implements store.InviteStore.
func (*inviteStore) ListTeamInvites(ctx context.Context, h db.Handler, team int64) ([]models.TeamInvite, error) {
	var m []models.TeamInvite
	query := h.Rebind(`SELECT * FROM team_invites WHERE team_id = ? ORDER BY created_at;`)
	err := h.SelectContext(ctx, &m, query, team)
	return m, db.WrapError(err)
}

// DeleteExpiredInvites implements store.InviteStore.
func (*inviteStore) DeleteExpiredInvites(ctx context.Context, h db.Handler, now time.Time) (int64, error) {
	query := h.Rebind(`DELETE FROM team_invites WHERE expires_at < ?;`)
	r, err := h.ExecContext(ctx, query, now)
	if err != nil {
		return 0, db.WrapError(err)
	}

	return r.RowsAffected()
}
