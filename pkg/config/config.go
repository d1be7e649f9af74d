// Package config provides the configuration for the osm-teams server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when a nil config is passed where one is required.
var ErrNilConfig = errors.New("nil config")

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// MaxPageSize caps the page size of paginated listings.
	MaxPageSize int `env:"MAX_PAGE_SIZE" yaml:"max_page_size"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// InviteConfig is the configuration for team join invitations.
type InviteConfig struct {
	// TTL is how long a join invitation stays valid.
	// Accepts extended durations like "2w" or "30d".
	TTL string `env:"TTL" yaml:"ttl"`

	// Sweep is the cron spec for the expired-invitation sweep job.
	Sweep string `env:"SWEEP" yaml:"sweep"`
}

// ParseTTL parses the invitation TTL.
func (c InviteConfig) ParseTTL() (time.Duration, error) {
	d, err := duration.Parse(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("parse invite ttl: %w", err)
	}
	return d, nil
}

// Config is the configuration for osm-teams.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Invites is the configuration for team join invitations.
	Invites InviteConfig `envPrefix:"INVITES_" yaml:"invites"`

	// DataPath is the path to the directory where osm-teams will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	envs = append(envs, []string{
		fmt.Sprintf("OSM_TEAMS_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("OSM_TEAMS_NAME=%s", c.Name),
		fmt.Sprintf("OSM_TEAMS_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("OSM_TEAMS_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("OSM_TEAMS_HTTP_MAX_PAGE_SIZE=%d", c.HTTP.MaxPageSize),
		fmt.Sprintf("OSM_TEAMS_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("OSM_TEAMS_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("OSM_TEAMS_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("OSM_TEAMS_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("OSM_TEAMS_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("OSM_TEAMS_INVITES_TTL=%s", c.Invites.TTL),
		fmt.Sprintf("OSM_TEAMS_INVITES_SWEEP=%s", c.Invites.Sweep),
	}...)

	return envs
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("OSM_TEAMS_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("OSM_TEAMS_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "OSM_TEAMS_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, b, 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the OSM_TEAMS_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("OSM_TEAMS_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string { // nolint:revive
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(filepath.Join(c.DataPath, "config.yaml"))
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "OSM Teams",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr:  ":8989",
			PublicURL:   "http://localhost:8989",
			MaxPageSize: 50,
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:8990",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "osm-teams.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Invites: InviteConfig{
			TTL:   "2w",
			Sweep: "@every 1h",
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	if c.HTTP.MaxPageSize <= 0 {
		c.HTTP.MaxPageSize = DefaultConfig().HTTP.MaxPageSize
	}

	if c.Invites.TTL != "" {
		if _, err := c.Invites.ParseTTL(); err != nil {
			return err
		}
	}

	return nil
}
