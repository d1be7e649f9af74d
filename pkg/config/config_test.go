package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseEnvOverrides(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	is.NoErr(os.Setenv("OSM_TEAMS_DATA_PATH", td))
	is.NoErr(os.Setenv("OSM_TEAMS_DB_DRIVER", "postgres"))
	is.NoErr(os.Setenv("OSM_TEAMS_DB_DATA_SOURCE", "postgres://localhost/teams"))
	is.NoErr(os.Setenv("OSM_TEAMS_HTTP_MAX_PAGE_SIZE", "25"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("OSM_TEAMS_DATA_PATH"))
		is.NoErr(os.Unsetenv("OSM_TEAMS_DB_DRIVER"))
		is.NoErr(os.Unsetenv("OSM_TEAMS_DB_DATA_SOURCE"))
		is.NoErr(os.Unsetenv("OSM_TEAMS_HTTP_MAX_PAGE_SIZE"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.DB.Driver, "postgres")
	is.Equal(cfg.DB.DataSource, "postgres://localhost/teams")
	is.Equal(cfg.HTTP.MaxPageSize, 25)
}

func TestParseConfigFile(t *testing.T) {
	is := is.New(t)
	cfg := &Config{
		DataPath: t.TempDir(),
		HTTP: HTTPConfig{
			ListenAddr:  ":9999",
			PublicURL:   "http://example.com/",
			MaxPageSize: 10,
		},
		Invites: InviteConfig{TTL: "1w", Sweep: "@every 1h"},
	}
	is.NoErr(cfg.WriteConfig())
	is.True(cfg.Exist())

	got := &Config{DataPath: cfg.DataPath}
	is.NoErr(got.ParseFile())
	is.Equal(got.HTTP.ListenAddr, ":9999")
	// Trailing slash is stripped by Validate.
	is.Equal(got.HTTP.PublicURL, "http://example.com")

	ttl, err := got.Invites.ParseTTL()
	is.NoErr(err)
	is.Equal(ttl, 7*24*time.Hour)
}

func TestValidateSqliteDataSource(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.DB.DataSource = "teams.db"
	is.NoErr(cfg.Validate())
	is.True(filepath.IsAbs(cfg.DB.DataSource))
}

func TestValidateBadInviteTTL(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Invites.TTL = "bogus"
	err := cfg.Validate()
	is.True(err != nil)
}

func TestMaxPageSizeDefaulted(t *testing.T) {
	is := is.New(t)
	cfg := &Config{DataPath: t.TempDir()}
	is.NoErr(cfg.Validate())
	is.Equal(cfg.HTTP.MaxPageSize, DefaultConfig().HTTP.MaxPageSize)
}
