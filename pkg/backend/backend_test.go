package backend

import (
	"context"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/config"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/internal/test"
	"github.com/developmentseed/osm-teams/pkg/db/migrate"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store/database"
	"github.com/matryer/is"
)

func testBackend(t *testing.T) (context.Context, *Backend, *db.DB) {
	t.Helper()
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(migrate.Migrate(ctx, dbx))
	cfg := config.DefaultConfig()
	st := database.New(ctx, dbx)
	return ctx, New(ctx, cfg, dbx, st), dbx
}

// as returns a context authenticated as the given user.
func as(ctx context.Context, user int64) context.Context {
	return proto.WithUserContext(ctx, user)
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
