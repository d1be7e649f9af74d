package store

import (
	"context"
	"time"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
)

// InviteStore is a store for team join invitations.
type InviteStore interface {
	CreateInvite(ctx context.Context, h db.Handler, inv models.TeamInvite) error
	GetInvite(ctx context.Context, h db.Handler, token string) (models.TeamInvite, error)
	DeleteInvite(ctx context.Context, h db.Handler, token string) error
	ListTeamInvites(ctx context.Context, h db.Handler, team int64) ([]models.TeamInvite, error)
	// DeleteExpiredInvites removes invitations that expired before now and
	// returns how many were removed.
	DeleteExpiredInvites(ctx context.Context, h db.Handler, now time.Time) (int64, error)
}
