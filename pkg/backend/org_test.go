package backend

import (
	"errors"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/matryer/is"
)

func TestCreateOrgBootstrapsOwner(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	org, err := b.CreateOrg(as(ctx, alice), "osm", "mapping together")
	is.NoErr(err)

	owners, err := b.ListOrgOwners(as(ctx, alice), org.ID())
	is.NoErr(err)
	is.Equal(owners, []int64{alice})

	managers, _, err := b.ListOrgManagers(as(ctx, alice), org.ID(), 1, 10)
	is.NoErr(err)
	is.Equal(managers, []int64{alice})
}

func TestRemoveLastOwner(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	org, err := b.CreateOrg(as(ctx, alice), "osm", "")
	is.NoErr(err)

	err = b.RemoveOrgOwner(as(ctx, alice), org.ID(), alice)
	is.True(errors.Is(err, proto.ErrLastOwner))

	is.NoErr(b.AddOrgOwner(as(ctx, alice), org.ID(), bob))
	is.NoErr(b.RemoveOrgOwner(as(ctx, alice), org.ID(), alice))

	owners, err := b.ListOrgOwners(as(ctx, bob), org.ID())
	is.NoErr(err)
	is.Equal(owners, []int64{bob})
}

func TestOrgAuthorityFlowsDownward(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	org, err := b.CreateOrg(as(ctx, alice), "osm", "")
	is.NoErr(err)
	tm, err := b.CreateOrgTeam(as(ctx, alice), org.ID(), "field", store.TeamUpdate{})
	is.NoErr(err)

	is.NoErr(b.AddOrgOwner(as(ctx, alice), org.ID(), bob))
	is.NoErr(b.AddOrgManager(as(ctx, alice), org.ID(), carol))

	// Owners hold full control over the organization's teams without any
	// team role of their own.
	_, err = b.UpdateTeam(as(ctx, bob), tm.ID(), store.TeamUpdate{Bio: strptr("by owner")})
	is.NoErr(err)
	is.NoErr(b.AddTeamMember(as(ctx, bob), tm.ID(), int64(400)))

	// Managers get everything but destruction.
	_, err = b.UpdateTeam(as(ctx, carol), tm.ID(), store.TeamUpdate{Bio: strptr("by manager")})
	is.NoErr(err)
	err = b.DeleteTeam(as(ctx, carol), tm.ID())
	is.True(errors.Is(err, proto.ErrUnauthorized))

	is.NoErr(b.DeleteTeam(as(ctx, bob), tm.ID()))
}

func TestAddTeamToOrgExclusive(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	org, err := b.CreateOrg(as(ctx, alice), "osm", "")
	is.NoErr(err)
	other, err := b.CreateOrg(as(ctx, alice), "hot", "")
	is.NoErr(err)
	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)

	is.NoErr(b.AddTeamToOrg(as(ctx, alice), org.ID(), tm.ID()))

	err = b.AddTeamToOrg(as(ctx, alice), other.ID(), tm.ID())
	is.True(errors.Is(err, proto.ErrTeamHasOrg))
	is.True(errors.Is(err, proto.ErrConstraintViolation))
}

func TestDeleteOrgCascadesTeams(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	org, err := b.CreateOrg(as(ctx, alice), "osm", "")
	is.NoErr(err)
	t1, err := b.CreateOrgTeam(as(ctx, alice), org.ID(), "one", store.TeamUpdate{})
	is.NoErr(err)
	t2, err := b.CreateOrgTeam(as(ctx, alice), org.ID(), "two", store.TeamUpdate{})
	is.NoErr(err)
	is.NoErr(b.AddTeamMember(as(ctx, alice), t2.ID(), bob))

	// Managers cannot destroy the organization.
	is.NoErr(b.AddOrgManager(as(ctx, alice), org.ID(), carol))
	err = b.DeleteOrg(as(ctx, carol), org.ID())
	is.True(errors.Is(err, proto.ErrUnauthorized))

	is.NoErr(b.DeleteOrg(as(ctx, alice), org.ID()))

	_, err = b.GetOrg(ctx, org.ID())
	is.True(errors.Is(err, proto.ErrOrgNotFound))
	_, err = b.GetTeam(as(ctx, alice), t1.ID())
	is.True(errors.Is(err, proto.ErrTeamNotFound))
	_, err = b.GetTeam(as(ctx, alice), t2.ID())
	is.True(errors.Is(err, proto.ErrTeamNotFound))
}

func TestListOrgTeamsClampsLimit(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	org, err := b.CreateOrg(as(ctx, alice), "osm", "")
	is.NoErr(err)
	for _, name := range []string{"one", "two", "three"} {
		_, err := b.CreateOrgTeam(as(ctx, alice), org.ID(), name, store.TeamUpdate{})
		is.NoErr(err)
	}

	// A limit over the configured maximum falls back to it.
	teams, page, err := b.ListOrgTeams(ctx, org.ID(), 0, 10_000)
	is.NoErr(err)
	is.Equal(len(teams), 3)
	is.Equal(page.Page, 1)
	is.Equal(page.Limit, b.cfg.HTTP.MaxPageSize)
	is.Equal(page.Total, int64(3))
}
