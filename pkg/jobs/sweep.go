package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/developmentseed/osm-teams/pkg/backend"
	"github.com/developmentseed/osm-teams/pkg/config"
)

func init() {
	Register("invite-sweep", inviteSweep{})
}

// inviteSweep deletes expired team invitations on the configured schedule.
type inviteSweep struct{}

// Spec implements Runner.
func (inviteSweep) Spec(ctx context.Context) string {
	return config.FromContext(ctx).Invites.Sweep
}

// Func implements Runner.
func (inviteSweep) Func(ctx context.Context) func() {
	b := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.invite-sweep")
	return func() {
		n, err := b.SweepExpiredInvites(ctx)
		if err != nil {
			logger.Error("failed to sweep expired invites", "err", err)
			return
		}
		if n > 0 {
			logger.Info("swept expired invites", "count", n)
		}
	}
}
