package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/matryer/is"
)

func TestCreateOrg(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	org, err := s.CreateOrg(ctx, dbx, "osm", "mapping together")
	is.NoErr(err)
	is.True(org.ID > 0)
	is.Equal(org.Name, "osm")
	is.Equal(org.Description.String, "mapping together")

	_, err = s.CreateOrg(ctx, dbx, "", "")
	is.True(errors.Is(err, proto.ErrInvalidInput))
}

func TestAddTeamToOrg(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	org, err := s.CreateOrg(ctx, dbx, "osm", "")
	is.NoErr(err)
	other, err := s.CreateOrg(ctx, dbx, "hot", "")
	is.NoErr(err)
	team, err := s.CreateTeam(ctx, dbx, "mappers", store.TeamUpdate{})
	is.NoErr(err)

	is.NoErr(s.AddTeamToOrg(ctx, dbx, org.ID, team.ID))

	got, ok, err := s.TeamOrg(ctx, dbx, team.ID)
	is.NoErr(err)
	is.True(ok)
	is.Equal(got, org.ID)

	// One organization per team, including re-adding to the same one.
	err = s.AddTeamToOrg(ctx, dbx, other.ID, team.ID)
	is.True(errors.Is(err, proto.ErrTeamHasOrg))
	err = s.AddTeamToOrg(ctx, dbx, org.ID, team.ID)
	is.True(errors.Is(err, proto.ErrTeamHasOrg))
}

func TestDeleteOrgCascades(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	org, err := s.CreateOrg(ctx, dbx, "osm", "")
	is.NoErr(err)
	team, err := s.CreateTeam(ctx, dbx, "mappers", store.TeamUpdate{})
	is.NoErr(err)
	is.NoErr(s.AddTeamToOrg(ctx, dbx, org.ID, team.ID))
	is.NoErr(s.GrantRole(ctx, dbx, proto.KindOrg, org.ID, 100, access.Owner))

	is.NoErr(s.DeleteOrgByID(ctx, dbx, org.ID))

	_, err = s.GetOrgByID(ctx, dbx, org.ID)
	is.True(errors.Is(err, db.ErrRecordNotFound))

	_, ok, err := s.TeamOrg(ctx, dbx, team.ID)
	is.NoErr(err)
	is.True(!ok)

	roles, err := s.ListRoles(ctx, dbx, proto.KindOrg, org.ID)
	is.NoErr(err)
	is.Equal(len(roles), 0)
}

func TestListOrgTeamsPaginated(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	org, err := s.CreateOrg(ctx, dbx, "osm", "")
	is.NoErr(err)
	for i := 0; i < 5; i++ {
		team, err := s.CreateTeam(ctx, dbx, fmt.Sprintf("team-%d", i), store.TeamUpdate{})
		is.NoErr(err)
		is.NoErr(s.AddTeamToOrg(ctx, dbx, org.ID, team.ID))
	}

	page1, total, err := s.ListOrgTeams(ctx, dbx, org.ID, 1, 2)
	is.NoErr(err)
	is.Equal(total, int64(5))
	is.Equal(len(page1), 2)

	page3, total, err := s.ListOrgTeams(ctx, dbx, org.ID, 3, 2)
	is.NoErr(err)
	is.Equal(total, int64(5))
	is.Equal(len(page3), 1)

	empty, total, err := s.ListOrgTeams(ctx, dbx, org.ID, 4, 2)
	is.NoErr(err)
	is.Equal(total, int64(5))
	is.Equal(len(empty), 0)
}

func TestListOrgMembersAndManagers(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	org, err := s.CreateOrg(ctx, dbx, "osm", "")
	is.NoErr(err)
	is.NoErr(s.GrantRole(ctx, dbx, proto.KindOrg, org.ID, 100, access.Owner))
	is.NoErr(s.GrantRole(ctx, dbx, proto.KindOrg, org.ID, 100, access.Manager))
	is.NoErr(s.GrantRole(ctx, dbx, proto.KindOrg, org.ID, 200, access.Manager))

	// 100 holds two roles but counts once.
	members, total, err := s.ListOrgMembers(ctx, dbx, org.ID, 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(2))
	is.Equal(members, []int64{100, 200})

	managers, total, err := s.ListOrgManagers(ctx, dbx, org.ID, 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(2))
	is.Equal(managers, []int64{100, 200})
}
