package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/developmentseed/osm-teams/pkg/backend"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/gorilla/mux"
)

// AttributesController registers the profile attribute definition routes.
func AttributesController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/teams/{id:[0-9]+}/attributes", listAttributesFor(proto.KindTeam)).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}/attributes", createAttributeFor(proto.KindTeam)).Methods(http.MethodPost)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/attributes", listAttributesFor(proto.KindOrg)).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{id:[0-9]+}/attributes", createAttributeFor(proto.KindOrg)).Methods(http.MethodPost)
	r.HandleFunc("/api/attributes/{id:[0-9]+}", updateAttribute).Methods(http.MethodPut)
	r.HandleFunc("/api/attributes/{id:[0-9]+}", deleteAttribute).Methods(http.MethodDelete)
}

type attributeRequest struct {
	Name       *string `json:"name"`
	ValueType  *string `json:"value_type"`
	Visibility *string `json:"visibility"`
	Required   *bool   `json:"required"`
}

type attributeResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ValueType  string `json:"value_type"`
	Visibility string `json:"visibility"`
	Required   bool   `json:"required"`
	OwnerType  string `json:"owner_type"`
	OwnerID    int64  `json:"owner_id"`
}

func toAttributeResponse(a models.AttributeDefinition) attributeResponse {
	return attributeResponse{
		ID:         a.ID,
		Name:       a.Name,
		ValueType:  a.ValueType,
		Visibility: a.Visibility,
		Required:   a.Required,
		OwnerType:  a.OwnerType,
		OwnerID:    a.OwnerID,
	}
}

func createAttributeFor(kind proto.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		be := backend.FromContext(ctx)

		id, err := muxID(r, "id")
		if err != nil {
			renderError(w, r, err)
			return
		}

		var req attributeRequest
		if err := decodeJSON(r, &req); err != nil {
			renderError(w, r, err)
			return
		}
		if req.Name == nil {
			renderError(w, r, fmt.Errorf("%w: name is required", proto.ErrInvalidInput))
			return
		}

		a := models.AttributeDefinition{Name: *req.Name, ValueType: "string", Visibility: "team"}
		if req.ValueType != nil {
			a.ValueType = *req.ValueType
		}
		if req.Visibility != nil {
			a.Visibility = *req.Visibility
		}
		if req.Required != nil {
			a.Required = *req.Required
		}

		m, err := be.CreateAttribute(ctx, kind, id, a)
		if err != nil {
			renderError(w, r, err)
			return
		}

		renderJSON(w, http.StatusCreated, toAttributeResponse(m))
	}
}

func listAttributesFor(kind proto.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		be := backend.FromContext(ctx)

		id, err := muxID(r, "id")
		if err != nil {
			renderError(w, r, err)
			return
		}

		as, err := be.ListAttributes(ctx, kind, id)
		if err != nil {
			renderError(w, r, err)
			return
		}

		rs := make([]attributeResponse, 0, len(as))
		for _, a := range as {
			rs = append(rs, toAttributeResponse(a))
		}
		renderJSON(w, http.StatusOK, rs)
	}
}

func updateAttribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req attributeRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	m, err := be.UpdateAttribute(ctx, id, store.AttributeUpdate{
		Name:       req.Name,
		ValueType:  req.ValueType,
		Visibility: req.Visibility,
		Required:   req.Required,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toAttributeResponse(m))
}

func deleteAttribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := muxID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteAttribute(ctx, id); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}
