// Package database provides the sqlx-backed implementation of the store
// interfaces.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/store"
)

// datastore composes the per-entity stores into a store.Store. The stores
// are stateless; every method takes the handler it should run on.
type datastore struct {
	*teamStore
	*orgStore
	*roleStore
	*attributeStore
	*inviteStore
}

// New returns a new store.Store database.
func New(ctx context.Context, dbx *db.DB) store.Store {
	log.FromContext(ctx).WithPrefix("store").Debug("using database store", "driver", dbx.DriverName())

	return &datastore{
		teamStore:      &teamStore{},
		orgStore:       &orgStore{},
		roleStore:      &roleStore{},
		attributeStore: &attributeStore{},
		inviteStore:    &inviteStore{},
	}
}
