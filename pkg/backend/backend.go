// Package backend coordinates teams, organizations, and their membership
// graph on top of the store.
package backend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/developmentseed/osm-teams/pkg/config"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/store"
)

// Backend handles teams, organizations, roles, and invitations. Mutations
// that touch more than one table run inside a single transaction.
type Backend struct {
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	names  *namesCache
}

// New returns a new osm-teams backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
	}

	b.names = newNamesCache(1000)

	return b
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// clampPage normalizes page and limit against the configured maximum.
func (b *Backend) clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	max := b.cfg.HTTP.MaxPageSize
	if limit < 1 || limit > max {
		limit = max
	}
	return page, limit
}
