// Package web provides the JSON API for teams and organizations.
package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns a new HTTP router.
func NewRouter(ctx context.Context) http.Handler {
	logger := log.FromContext(ctx).WithPrefix("http")
	router := mux.NewRouter()

	HealthController(ctx, router)
	TeamsController(ctx, router)
	OrgsController(ctx, router)
	AttributesController(ctx, router)

	router.PathPrefix("/").HandlerFunc(renderStatus(http.StatusNotFound))

	// Context handler
	// Adds context to the request
	h := NewIdentityMiddleware(router)
	h = NewLoggingMiddleware(h, logger)
	h = NewContextHandler(ctx)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler()(h)

	return h
}
