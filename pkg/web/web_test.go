package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/backend"
	"github.com/developmentseed/osm-teams/pkg/config"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/internal/test"
	"github.com/developmentseed/osm-teams/pkg/db/migrate"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/developmentseed/osm-teams/pkg/store/database"
	"github.com/matryer/is"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	is := is.New(t)
	ctx := context.TODO()

	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(migrate.Migrate(ctx, dbx))

	cfg := config.DefaultConfig()
	ctx = config.WithContext(ctx, cfg)
	ctx = db.WithContext(ctx, dbx)
	st := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	be := backend.New(ctx, cfg, dbx, st)
	ctx = backend.WithContext(ctx, be)

	srv := httptest.NewServer(NewRouter(ctx))
	t.Cleanup(srv.Close)
	return srv
}

func request(t *testing.T, srv *httptest.Server, method, path string, user int64, body interface{}) (*http.Response, []byte) {
	t.Helper()
	is := is.New(t)

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		is.NoErr(err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, buf)
	is.NoErr(err)
	if user > 0 {
		req.Header.Set(UserHeader, fmt.Sprintf("%d", user))
	}

	resp, err := srv.Client().Do(req)
	is.NoErr(err)
	defer resp.Body.Close() //nolint:errcheck

	b, err := io.ReadAll(resp.Body)
	is.NoErr(err)
	return resp, b
}

func TestHealthEndpoints(t *testing.T) {
	is := is.New(t)
	srv := testServer(t)

	resp, _ := request(t, srv, http.MethodGet, "/livez", 0, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	resp, _ = request(t, srv, http.MethodGet, "/readyz", 0, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestTeamLifecycleOverHTTP(t *testing.T) {
	is := is.New(t)
	srv := testServer(t)

	resp, body := request(t, srv, http.MethodPost, "/api/teams", 100, map[string]interface{}{
		"name":     "mappers",
		"hashtag":  "#osm",
		"location": map[string]float64{"lng": 2.35, "lat": 48.85},
	})
	is.Equal(resp.StatusCode, http.StatusCreated)

	var team teamResponse
	is.NoErr(json.Unmarshal(body, &team))
	is.Equal(team.Name, "mappers")
	is.True(team.Location != nil)

	// Anonymous creation is rejected.
	resp, _ = request(t, srv, http.MethodPost, "/api/teams", 0, map[string]string{"name": "anon"})
	is.Equal(resp.StatusCode, http.StatusForbidden)

	// Missing name is a validation error.
	resp, _ = request(t, srv, http.MethodPost, "/api/teams", 100, map[string]string{"bio": "no name"})
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	path := fmt.Sprintf("/api/teams/%d", team.ID)
	resp, body = request(t, srv, http.MethodGet, path, 0, nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	// Only moderators may delete.
	resp, _ = request(t, srv, http.MethodDelete, path, 200, nil)
	is.Equal(resp.StatusCode, http.StatusForbidden)
	resp, _ = request(t, srv, http.MethodDelete, path, 100, nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)
	resp, _ = request(t, srv, http.MethodGet, path, 0, nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestTeamMembersOverHTTP(t *testing.T) {
	is := is.New(t)
	srv := testServer(t)

	_, body := request(t, srv, http.MethodPost, "/api/teams", 100, map[string]string{"name": "mappers"})
	var team teamResponse
	is.NoErr(json.Unmarshal(body, &team))

	base := fmt.Sprintf("/api/teams/%d", team.ID)
	resp, _ := request(t, srv, http.MethodPut, base+"/members/200", 100, nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)

	resp, body = request(t, srv, http.MethodGet, base+"/members", 100, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	var members teamMembersResponse
	is.NoErr(json.Unmarshal(body, &members))
	is.Equal(len(members.Members), 2)
	is.Equal(members.Moderators, []int64{100})

	// Removing the last moderator through the batch route conflicts.
	resp, _ = request(t, srv, http.MethodPatch, base+"/members", 100, map[string][]int64{
		"remove": {100},
	})
	is.Equal(resp.StatusCode, http.StatusConflict)
}

func TestListTeamsBadBBox(t *testing.T) {
	is := is.New(t)
	srv := testServer(t)

	resp, _ := request(t, srv, http.MethodGet, "/api/teams?bbox=1,2,3", 0, nil)
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = request(t, srv, http.MethodGet, "/api/teams?bbox=-10,35,20,60", 0, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestOrgTeamsOverHTTP(t *testing.T) {
	is := is.New(t)
	srv := testServer(t)

	resp, body := request(t, srv, http.MethodPost, "/api/organizations", 100, map[string]string{"name": "osm"})
	is.Equal(resp.StatusCode, http.StatusCreated)
	var org orgResponse
	is.NoErr(json.Unmarshal(body, &org))

	base := fmt.Sprintf("/api/organizations/%d", org.ID)
	resp, body = request(t, srv, http.MethodPost, base+"/teams", 100, map[string]string{"name": "field"})
	is.Equal(resp.StatusCode, http.StatusCreated)
	var team teamResponse
	is.NoErr(json.Unmarshal(body, &team))

	// Attaching the same team to a second organization conflicts.
	resp, body = request(t, srv, http.MethodPost, "/api/organizations", 100, map[string]string{"name": "hot"})
	is.Equal(resp.StatusCode, http.StatusCreated)
	var other orgResponse
	is.NoErr(json.Unmarshal(body, &other))
	resp, _ = request(t, srv, http.MethodPut,
		fmt.Sprintf("/api/organizations/%d/teams/%d", other.ID, team.ID), 100, nil)
	is.Equal(resp.StatusCode, http.StatusConflict)

	resp, body = request(t, srv, http.MethodGet, base+"/teams", 0, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	var page pageResponse
	is.NoErr(json.Unmarshal(body, &page))
	is.Equal(page.Pagination.Total, int64(1))
}

func TestInvalidUserHeader(t *testing.T) {
	is := is.New(t)
	srv := testServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/teams", nil)
	is.NoErr(err)
	req.Header.Set(UserHeader, "not-a-number")
	resp, err := srv.Client().Do(req)
	is.NoErr(err)
	defer resp.Body.Close() //nolint:errcheck
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}
