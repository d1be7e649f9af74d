package backend

import (
	"context"
	"time"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/google/uuid"
)

// CreateInvite issues a join invitation for the team. The token stays valid
// for the configured TTL and may be accepted any number of times until it
// expires.
func (b *Backend) CreateInvite(ctx context.Context, teamID int64) (models.TeamInvite, error) {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return models.TeamInvite{}, err
	}

	ttl, err := b.cfg.Invites.ParseTTL()
	if err != nil {
		return models.TeamInvite{}, err
	}

	inv := models.TeamInvite{
		Token:     uuid.NewString(),
		TeamID:    teamID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := b.store.CreateInvite(ctx, b.db, inv); err != nil {
		return models.TeamInvite{}, err
	}

	return inv, nil
}

// AcceptInvite joins the acting user to the invited team. An expired or
// unknown token fails with ErrInviteNotFound.
func (b *Backend) AcceptInvite(ctx context.Context, token string) (proto.Team, error) {
	user, ok := proto.UserFromContext(ctx)
	if !ok {
		return nil, proto.ErrUnauthorized
	}

	inv, err := b.store.GetInvite(ctx, b.db, token)
	if err != nil {
		return nil, wrapInviteErr(err)
	}
	if time.Now().UTC().After(inv.ExpiresAt) {
		return nil, proto.ErrInviteNotFound
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return b.store.GrantRole(ctx, tx, proto.KindTeam, inv.TeamID, user, access.Member)
	}); err != nil {
		return nil, err
	}

	m, err := b.store.GetTeamByID(ctx, b.db, inv.TeamID)
	if err != nil {
		return nil, wrapTeamErr(err)
	}
	return team{m}, nil
}

// ListInvites returns the team's outstanding invitations.
func (b *Backend) ListInvites(ctx context.Context, teamID int64) ([]models.TeamInvite, error) {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return nil, err
	}
	return b.store.ListTeamInvites(ctx, b.db, teamID)
}

// RevokeInvite deletes an invitation before it expires.
func (b *Backend) RevokeInvite(ctx context.Context, teamID int64, token string) error {
	if err := b.AuthorizeTeam(ctx, teamID, access.Members); err != nil {
		return err
	}

	inv, err := b.store.GetInvite(ctx, b.db, token)
	if err != nil {
		return wrapInviteErr(err)
	}
	if inv.TeamID != teamID {
		return proto.ErrInviteNotFound
	}

	return wrapInviteErr(b.store.DeleteInvite(ctx, b.db, token))
}

// SweepExpiredInvites deletes invitations past their expiry and returns how
// many were removed. Run periodically by the invite sweep job.
func (b *Backend) SweepExpiredInvites(ctx context.Context) (int64, error) {
	return b.store.DeleteExpiredInvites(ctx, b.db, time.Now().UTC())
}
