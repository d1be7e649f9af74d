package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/developmentseed/osm-teams/pkg/backend"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/developmentseed/osm-teams/pkg/utils"
	"github.com/gorilla/mux"
)

// TeamsController registers the team routes.
func TeamsController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/teams", listTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/teams", createTeam).Methods(http.MethodPost)
	r.HandleFunc("/api/teams/invites/{token}/accept", acceptInvite).Methods(http.MethodPost)
	r.HandleFunc("/api/teams/{id:[0-9]+}", getTeam).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}", updateTeam).Methods(http.MethodPut)
	r.HandleFunc("/api/teams/{id:[0-9]+}", deleteTeam).Methods(http.MethodDelete)
	r.HandleFunc("/api/teams/{id:[0-9]+}/members", getTeamMembers).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}/members", patchTeamMembers).Methods(http.MethodPatch)
	r.HandleFunc("/api/teams/{id:[0-9]+}/members/{osmID:[0-9]+}", putTeamMember).Methods(http.MethodPut)
	r.HandleFunc("/api/teams/{id:[0-9]+}/members/{osmID:[0-9]+}", deleteTeamMember).Methods(http.MethodDelete)
	r.HandleFunc("/api/teams/{id:[0-9]+}/moderators/{osmID:[0-9]+}", putModerator).Methods(http.MethodPut)
	r.HandleFunc("/api/teams/{id:[0-9]+}/moderators/{osmID:[0-9]+}", deleteModerator).Methods(http.MethodDelete)
	r.HandleFunc("/api/teams/{id:[0-9]+}/tags", getTeamTags).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}/tags", putTeamTags).Methods(http.MethodPut)
	r.HandleFunc("/api/teams/{id:[0-9]+}/invites", listInvites).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}/invites", createInvite).Methods(http.MethodPost)
	r.HandleFunc("/api/teams/{id:[0-9]+}/invites/{token}", deleteInvite).Methods(http.MethodDelete)
}

func muxID(r *http.Request, name string) (int64, error) {
	v := mux.Vars(r)[name]
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s", proto.ErrInvalidInput, name)
	}
	return id, nil
}

type pointRequest struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type teamRequest struct {
	Name     *string       `json:"name"`
	Bio      *string       `json:"bio"`
	Hashtag  *string       `json:"hashtag"`
	Location *pointRequest `json:"location"`
	Private  *bool         `json:"private"`
}

func (req teamRequest) update() store.TeamUpdate {
	u := store.TeamUpdate{
		Name:    req.Name,
		Bio:     req.Bio,
		Hashtag: req.Hashtag,
		Private: req.Private,
	}
	if req.Location != nil {
		u.Location = &store.Point{Lng: req.Location.Lng, Lat: req.Location.Lat}
	}
	return u
}

type teamResponse struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Bio      string        `json:"bio,omitempty"`
	Hashtag  string        `json:"hashtag,omitempty"`
	Location *pointRequest `json:"location,omitempty"`
	Private  bool          `json:"private"`
}

func toTeamResponse(t proto.Team) teamResponse {
	r := teamResponse{
		ID:      t.ID(),
		Name:    t.Name(),
		Bio:     t.Bio(),
		Hashtag: t.Hashtag(),
		Private: t.IsPrivate(),
	}
	if lng, lat, ok := t.Location(); ok {
		r.Location = &pointRequest{Lng: lng, Lat: lat}
	}
	return r
}

func createTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req teamRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	if req.Name == nil {
		renderError(w, r, fmt.Errorf("%w: name is required", proto.ErrInvalidInput))
		return
	}

	team, err := be.CreateTeam(ctx, *req.Name, req.update())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, toTeamResponse(team))
}

func listTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var f store.TeamFilter
	if v := r.URL.Query().Get("osm_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("%w: bad osm_id", proto.ErrInvalidInput))
			return
		}
		f.OsmID = &id
	}
	if v := r.URL.Query().Get("name"); v != "" {
		f.Name = &v
	}

	bbox, err := utils.ParseBBox(r.URL.Query().Get("bbox"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	f.BBox = bbox

	teams, err := be.ListTeams(ctx, f)
	if err != nil {
		renderError(w, r, err)
		return
	}

	rs := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		rs = append(rs, toTeamResponse(t))
	}
	renderJSON(w, http.StatusOK, rs)
}

func getTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	team, err := be.GetTeam(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamResponse(team))
}

func updateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req teamRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	team, err := be.UpdateTeam(ctx, id, req.update())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamResponse(team))
}

func deleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteTeam(ctx, id); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

type memberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type teamMembersResponse struct {
	Members    []memberResponse `json:"members"`
	Moderators []int64          `json:"moderators"`
}

func getTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	members, moderators, err := be.TeamMembers(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	names, err := be.ResolveMemberNames(ctx, members)
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := teamMembersResponse{
		Members:    make([]memberResponse, 0, len(members)),
		Moderators: moderators,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, memberResponse{ID: m, Name: names[m]})
	}
	renderJSON(w, http.StatusOK, resp)
}

type membersPatchRequest struct {
	Add    []int64 `json:"add"`
	Remove []int64 `json:"remove"`
}

func patchTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req membersPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.UpdateTeamMembers(ctx, id, req.Add, req.Remove); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func teamMemberAction(fn func(be *backend.Backend, ctx context.Context, team, user int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		be := backend.FromContext(ctx)

		id, err := muxID(r, "id")
		if err != nil {
			renderError(w, r, err)
			return
		}
		osmID, err := muxID(r, "osmID")
		if err != nil {
			renderError(w, r, err)
			return
		}

		if err := fn(be, ctx, id, osmID); err != nil {
			renderError(w, r, err)
			return
		}

		renderStatus(http.StatusNoContent)(w, r)
	}
}

func putTeamMember(w http.ResponseWriter, r *http.Request) {
	teamMemberAction((*backend.Backend).AddTeamMember)(w, r)
}

func deleteTeamMember(w http.ResponseWriter, r *http.Request) {
	teamMemberAction((*backend.Backend).RemoveTeamMember)(w, r)
}

func putModerator(w http.ResponseWriter, r *http.Request) {
	teamMemberAction((*backend.Backend).AssignModerator)(w, r)
}

func deleteModerator(w http.ResponseWriter, r *http.Request) {
	teamMemberAction((*backend.Backend).RemoveModerator)(w, r)
}

func getTeamTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	tags, err := be.TeamTags(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}

func putTeamTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.UpdateTeamTags(ctx, id, req.Tags); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

type inviteResponse struct {
	Token     string `json:"token"`
	TeamID    int64  `json:"team_id"`
	ExpiresAt string `json:"expires_at"`
}

func listInvites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	invites, err := be.ListInvites(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	rs := make([]inviteResponse, 0, len(invites))
	for _, inv := range invites {
		rs = append(rs, inviteResponse{
			Token:     inv.Token,
			TeamID:    inv.TeamID,
			ExpiresAt: inv.ExpiresAt.Format(http.TimeFormat),
		})
	}
	renderJSON(w, http.StatusOK, rs)
}

func createInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	inv, err := be.CreateInvite(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, inviteResponse{
		Token:     inv.Token,
		TeamID:    inv.TeamID,
		ExpiresAt: inv.ExpiresAt.Format(http.TimeFormat),
	})
}

func deleteInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.RevokeInvite(ctx, id, mux.Vars(r)["token"]); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func acceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	team, err := be.AcceptInvite(ctx, mux.Vars(r)["token"])
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamResponse(team))
}
