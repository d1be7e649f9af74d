package database

import (
	"context"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/internal/test"
	"github.com/developmentseed/osm-teams/pkg/db/migrate"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/matryer/is"
)

func setupStore(t *testing.T) (context.Context, *db.DB, store.Store) {
	t.Helper()
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(migrate.Migrate(ctx, dbx))
	return ctx, dbx, New(ctx, dbx)
}
