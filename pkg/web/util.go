package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/proto"
)

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck,errchkjson
}

type errorResponse struct {
	Error string `json:"error"`
}

// renderError maps the error taxonomy onto HTTP status codes. Storage
// failures stay opaque to the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	switch {
	case errors.Is(err, proto.ErrConstraintViolation):
		code = http.StatusConflict
	case errors.Is(err, proto.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, proto.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, proto.ErrTeamNotFound),
		errors.Is(err, proto.ErrOrgNotFound),
		errors.Is(err, proto.ErrAttributeNotFound),
		errors.Is(err, proto.ErrInviteNotFound),
		errors.Is(err, db.ErrRecordNotFound):
		code = http.StatusNotFound
	default:
		log.FromContext(r.Context()).Error("request failed", "err", err)
		renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	renderJSON(w, code, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s", proto.ErrInvalidInput, err)
	}
	return nil
}
