package migrate

import (
	"context"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/internal/test"
)

func TestMigrate(t *testing.T) {
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(ctx, dbx); err != nil {
		t.Errorf("Migrate() => %v, want nil error", err)
	}

	// Running it again is a no-op.
	if err := Migrate(ctx, dbx); err != nil {
		t.Errorf("Migrate() => %v, want nil error", err)
	}
}

func TestRollback(t *testing.T) {
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}
	for range migrations {
		if err := Rollback(ctx, dbx); err != nil {
			t.Errorf("Rollback() => %v, want nil error", err)
		}
	}
	if err := Rollback(ctx, dbx); err == nil {
		t.Error("Rollback() => nil, want error when no migrations remain")
	}
}
