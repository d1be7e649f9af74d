package web

import (
	"net/http"
	"strconv"

	"github.com/developmentseed/osm-teams/pkg/proto"
)

// UserHeader carries the authenticated OSM user id, set by the
// authenticating proxy in front of the server. Identity resolution is not
// this server's job.
const UserHeader = "X-Osm-Id"

// NewIdentityMiddleware attaches the acting user id to the request context.
// Requests without the header proceed anonymously.
func NewIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get(UserHeader); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id <= 0 {
				renderStatus(http.StatusBadRequest)(w, r)
				return
			}
			r = r.WithContext(proto.WithUserContext(r.Context(), id))
		}

		next.ServeHTTP(w, r)
	})
}
