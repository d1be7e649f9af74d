package backend

import (
	"errors"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/matryer/is"
)

const (
	alice = int64(100)
	bob   = int64(200)
	carol = int64(300)
)

func TestCreateTeamBootstrapsModerator(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)

	members, moderators, err := b.TeamMembers(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.Equal(members, []int64{alice})
	is.Equal(moderators, []int64{alice})

	// Anonymous users cannot create teams.
	_, err = b.CreateTeam(ctx, "anon", store.TeamUpdate{})
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestRemoveMemberDropsModeratorRole(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)
	is.NoErr(b.AddTeamMember(as(ctx, alice), tm.ID(), bob))
	is.NoErr(b.AssignModerator(as(ctx, alice), tm.ID(), bob))

	// Two moderators now, so removing one entirely is fine.
	is.NoErr(b.RemoveTeamMember(as(ctx, alice), tm.ID(), bob))

	members, moderators, err := b.TeamMembers(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.Equal(members, []int64{alice})
	is.Equal(moderators, []int64{alice})
}

func TestRemoveLastModeratorRollsBack(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)

	err = b.RemoveTeamMember(as(ctx, alice), tm.ID(), alice)
	is.True(errors.Is(err, proto.ErrLastModerator))

	// The member role survives because nothing is partially applied.
	members, moderators, err := b.TeamMembers(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.Equal(members, []int64{alice})
	is.Equal(moderators, []int64{alice})
}

func TestUpdateTeamMembersAtomic(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)

	// Removing alice drops her moderator role, which fails on the last
	// moderator and must roll the additions back with it.
	err = b.UpdateTeamMembers(as(ctx, alice), tm.ID(), []int64{bob, carol}, []int64{alice})
	is.True(errors.Is(err, proto.ErrConstraintViolation))

	members, _, err := b.TeamMembers(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.Equal(members, []int64{alice})

	// Additions run before removals, so a user in both lists ends up out.
	is.NoErr(b.UpdateTeamMembers(as(ctx, alice), tm.ID(), []int64{bob, carol}, []int64{carol}))

	members, _, err = b.TeamMembers(as(ctx, alice), tm.ID())
	is.NoErr(err)
	is.Equal(members, []int64{alice, bob})
}

func TestListTeamsRejectsBadBounds(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	_, err := b.ListTeams(ctx, store.TeamFilter{BBox: []float64{1, 2, 3}})
	is.True(errors.Is(err, proto.ErrInvalidBounds))
	is.True(errors.Is(err, proto.ErrInvalidInput))

	teams, err := b.ListTeams(ctx, store.TeamFilter{})
	is.NoErr(err)
	is.Equal(len(teams), 0)
}

func TestPrivateTeamVisibility(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "secret", store.TeamUpdate{Private: boolptr(true)})
	is.NoErr(err)

	_, err = b.GetTeam(ctx, tm.ID())
	is.True(errors.Is(err, proto.ErrUnauthorized))
	_, err = b.GetTeam(as(ctx, bob), tm.ID())
	is.True(errors.Is(err, proto.ErrUnauthorized))

	is.NoErr(b.AddTeamMember(as(ctx, alice), tm.ID(), bob))
	got, err := b.GetTeam(as(ctx, bob), tm.ID())
	is.NoErr(err)
	is.Equal(got.Name(), "secret")
}

func TestDeleteTeamCascade(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{})
	is.NoErr(err)
	is.NoErr(b.UpdateTeamTags(as(ctx, alice), tm.ID(), []string{"osm"}))
	_, err = b.CreateInvite(as(ctx, alice), tm.ID())
	is.NoErr(err)

	// Members may not destroy the team.
	is.NoErr(b.AddTeamMember(as(ctx, alice), tm.ID(), bob))
	err = b.DeleteTeam(as(ctx, bob), tm.ID())
	is.True(errors.Is(err, proto.ErrUnauthorized))

	is.NoErr(b.DeleteTeam(as(ctx, alice), tm.ID()))

	_, err = b.GetTeam(as(ctx, alice), tm.ID())
	is.True(errors.Is(err, proto.ErrTeamNotFound))
	err = b.DeleteTeam(as(ctx, alice), tm.ID())
	is.True(errors.Is(err, proto.ErrTeamNotFound))
}

func TestUpdateTeamPartialProfile(t *testing.T) {
	is := is.New(t)
	ctx, b, _ := testBackend(t)

	tm, err := b.CreateTeam(as(ctx, alice), "mappers", store.TeamUpdate{Bio: strptr("old")})
	is.NoErr(err)

	got, err := b.UpdateTeam(as(ctx, alice), tm.ID(), store.TeamUpdate{Hashtag: strptr("#osm")})
	is.NoErr(err)
	is.Equal(got.Bio(), "old")
	is.Equal(got.Hashtag(), "#osm")

	// Plain members cannot edit the profile.
	is.NoErr(b.AddTeamMember(as(ctx, alice), tm.ID(), bob))
	_, err = b.UpdateTeam(as(ctx, bob), tm.ID(), store.TeamUpdate{Bio: strptr("hijack")})
	is.True(errors.Is(err, proto.ErrUnauthorized))
}
