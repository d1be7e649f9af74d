package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/matryer/is"
)

func TestInviteFlow(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)

	inv, err := b.CreateInvite(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.True(inv.Token != "")
	is.True(inv.ExpiresAt.After(time.Now()))

	// Plain members cannot issue invitations.
	is.NoErr(b.AddTeamMember(as(ctx, alice), tm.ID(), carol))
	_, err = b.CreateInvite(as(ctx, carol), tm.ID())
	is.True(errors.Is(err, proto.ErrUnauthorized))

	got, err := b.AcceptInvite(as(ctx, bob), inv.Token)
	is.NoErr(err)
	is.Equal(got.ID(), tm.ID())

	members, _, err := b.TeamMembers(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.Equal(members, []int64{alice, bob, carol})

	// Tokens stay valid until expiry, so accepting twice is harmless.
	_, err = b.AcceptInvite(as(ctx, bob), inv.Token)
	is.NoErr(err)

	is.NoErr(b.RevokeInvite(as(ctx, alice), tm.ID(), inv.Token))
	_, err = b.AcceptInvite(as(ctx, bob), inv.Token)
	is.True(errors.Is(err, proto.ErrInviteNotFound))
}

func TestAcceptExpiredInvite(t *testing.T) {
	is := is.New(t)
	ctx, b, dbx := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)

	is.NoErr(b.store.CreateInvite(ctx, dbx, models.TeamInvite{
		Token:     "stale",
		TeamID:    tm.ID(),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	_, err = b.AcceptInvite(as(ctx, bob), "stale")
	is.True(errors.Is(err, proto.ErrInviteNotFound))

	n, err := b.SweepExpiredInvites(ctx)
	is.NoErr(err)
	is.Equal(n, int64(1))
}

func TestResolveMemberNames(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	names, err := b.ResolveMemberNames(ctx, []int64{alice, bob})
	is.NoErr(err)
	is.Equal(len(names), 0)

	calls := 0
	b.SetUserResolver(resolverFunc(func(_ context.Context, ids []int64) (map[int64]string, error) {
		calls++
		r := make(map[int64]string, len(ids))
		for _, id := range ids {
			r[id] = "user-" + string(rune('a'+id%26))
		}
		return r, nil
	}))

	names, err = b.ResolveMemberNames(ctx, []int64{alice, bob})
	is.NoErr(err)
	is.Equal(len(names), 2)

	// Second lookup is served from the cache.
	_, err = b.ResolveMemberNames(ctx, []int64{alice, bob})
	is.NoErr(err)
	is.Equal(calls, 1)
}

type resolverFunc func(ctx context.Context, ids []int64) (map[int64]string, error)

func (f resolverFunc) ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	return f(ctx, ids)
}
