package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/developmentseed/osm-teams/pkg/backend"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/gorilla/mux"
)

// OrgsController registers the organization routes.
func OrgsController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/organizations", createOrg).Methods(http.MethodPost)
	r.HandleFunc("/api/organizations/{id:[0-9]+}", getOrg).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{id:[0-9]+}", updateOrg).Methods(http.MethodPut)
	r.HandleFunc("/api/organizations/{id:[0-9]+}", deleteOrg).Methods(http.MethodDelete)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/teams", listOrgTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/teams", createOrgTeam).Methods(http.MethodPost)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/teams/{teamID:[0-9]+}", attachOrgTeam).Methods(http.MethodPut)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/members", listOrgMembers).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/managers", listOrgManagers).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/owners", listOrgOwners).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/owners/{osmID:[0-9]+}", putOrgOwner).Methods(http.MethodPut)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/owners/{osmID:[0-9]+}", deleteOrgOwner).Methods(http.MethodDelete)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/managers/{osmID:[0-9]+}", putOrgManager).Methods(http.MethodPut)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/managers/{osmID:[0-9]+}", deleteOrgManager).Methods(http.MethodDelete)
}

type orgRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type orgResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func toOrgResponse(o proto.Org) orgResponse {
	return orgResponse{
		ID:          o.ID(),
		Name:        o.Name(),
		Description: o.Description(),
	}
}

func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

type pageResponse struct {
	Data       interface{}        `json:"data"`
	Pagination backend.Pagination `json:"pagination"`
}

func createOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req orgRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	if req.Name == nil {
		renderError(w, r, fmt.Errorf("%w: name is required", proto.ErrInvalidInput))
		return
	}
	var description string
	if req.Description != nil {
		description = *req.Description
	}

	org, err := be.CreateOrg(ctx, *req.Name, description)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, toOrgResponse(org))
}

func getOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	org, err := be.GetOrg(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrgResponse(org))
}

func updateOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req orgRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	org, err := be.UpdateOrg(ctx, id, store.OrgUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrgResponse(org))
}

func deleteOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteOrg(ctx, id); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func listOrgTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	page, limit := pageParams(r)
	teams, pagination, err := be.ListOrgTeams(ctx, id, page, limit)
	if err != nil {
		renderError(w, r, err)
		return
	}

	rs := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		rs = append(rs, toTeamResponse(t))
	}
	renderJSON(w, http.StatusOK, pageResponse{Data: rs, Pagination: pagination})
}

func createOrgTeam(w http.ResponseWriter, r *http.Request) {
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
	if req.Name == nil {
		renderError(w, r, fmt.Errorf("%w: name is required", proto.ErrInvalidInput))
		return
	}

	team, err := be.CreateOrgTeam(ctx, id, *req.Name, req.update())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, toTeamResponse(team))
}

func attachOrgTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}
	teamID, err := muxID(r, "teamID")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.AddTeamToOrg(ctx, id, teamID); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func listOrgMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	page, limit := pageParams(r)
	ids, pagination, err := be.ListOrgMembers(ctx, id, page, limit)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, pageResponse{Data: ids, Pagination: pagination})
}

func listOrgManagers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	page, limit := pageParams(r)
	ids, pagination, err := be.ListOrgManagers(ctx, id, page, limit)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, pageResponse{Data: ids, Pagination: pagination})
}

func listOrgOwners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	ids, err := be.ListOrgOwners(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, ids)
}

func orgRoleAction(fn func(be *backend.Backend, ctx context.Context, org, user int64) error) http.HandlerFunc {
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

func putOrgOwner(w http.ResponseWriter, r *http.Request) {
	orgRoleAction((*backend.Backend).AddOrgOwner)(w, r)
}

func deleteOrgOwner(w http.ResponseWriter, r *http.Request) {
	orgRoleAction((*backend.Backend).RemoveOrgOwner)(w, r)
}

func putOrgManager(w http.ResponseWriter, r *http.Request) {
	orgRoleAction((*backend.Backend).AddOrgManager)(w, r)
}

func deleteOrgManager(w http.ResponseWriter, r *http.Request) {
	orgRoleAction((*backend.Backend).RemoveOrgManager)(w, r)
}
