package serve

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/developmentseed/osm-teams/pkg/backend"
	"github.com/developmentseed/osm-teams/pkg/config"
	"github.com/developmentseed/osm-teams/pkg/cron"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/jobs"
	"github.com/developmentseed/osm-teams/pkg/stats"
	"github.com/developmentseed/osm-teams/pkg/web"
	"golang.org/x/sync/errgroup"
)

// Server is the osm-teams server.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server configured to serve osm-teams.
// It expects a context with *backend.Backend, *db.DB, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	dbx := db.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Backend: be,
		DB:      dbx,
		logger:  logger,
		ctx:     ctx,
	}

	// Add cron jobs.
	sched := cron.NewScheduler(ctx)
	for n, j := range jobs.List() {
		id, err := sched.AddFunc(j.Runner.Spec(ctx), j.Runner.Func(ctx))
		if err != nil {
			logger.Warn("error adding cron job", "job", n, "err", err)
		}

		j.ID = id
	}

	srv.Cron = sched

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, err
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, err
	}

	return srv, nil
}

// Start starts the server.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
		if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	errg.Go(func() error {
		s.logger.Print("Starting stats server", "addr", s.Config.Stats.ListenAddr)
		if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	s.Cron.Start()

	return errg.Wait()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	errs = append(errs, s.HTTPServer.Shutdown(ctx))
	errs = append(errs, s.StatsServer.Shutdown(ctx))
	s.Cron.Shutdown()
	return errors.Join(errs...)
}

// Close closes the server.
func (s *Server) Close() error {
	var errs []error
	errs = append(errs, s.HTTPServer.Close())
	errs = append(errs, s.StatsServer.Close())
	s.Cron.Shutdown()
	return errors.Join(errs...)
}
