package migrate

import (
	"context"
	"strings"

	"github.com/developmentseed/osm-teams/pkg/db"
)

const (
	createTablesName    = "create tables"
	createTablesVersion = 1
)

var createTables = Migration{
	Version: createTablesVersion,
	Name:    createTablesName,
	Migrate: func(ctx context.Context, tx *db.Tx) error {
		id := "INTEGER PRIMARY KEY AUTOINCREMENT"
		if tx.DriverName() == driverPostgres {
			id = "SERIAL PRIMARY KEY"
		}

		schema := `
		CREATE TABLE IF NOT EXISTS teams (
			id ` + id + `,
			name TEXT NOT NULL,
			bio TEXT,
			hashtag TEXT,
			location_lng REAL,
			location_lat REAL,
			private BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS team_members (
			id ` + id + `,
			team_id INTEGER NOT NULL,
			osm_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (team_id, osm_id),
			CONSTRAINT team_members_team_id_fk
				FOREIGN KEY (team_id) REFERENCES teams (id)
				ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS team_moderators (
			id ` + id + `,
			team_id INTEGER NOT NULL,
			osm_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (team_id, osm_id),
			CONSTRAINT team_moderators_team_id_fk
				FOREIGN KEY (team_id) REFERENCES teams (id)
				ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS team_tags (
			id ` + id + `,
			team_id INTEGER NOT NULL,
			tag TEXT NOT NULL,
			UNIQUE (team_id, tag),
			CONSTRAINT team_tags_team_id_fk
				FOREIGN KEY (team_id) REFERENCES teams (id)
				ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS organizations (
			id ` + id + `,
			name TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS organization_members (
			id ` + id + `,
			org_id INTEGER NOT NULL,
			osm_id INTEGER NOT NULL,
			role INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (org_id, osm_id, role),
			CONSTRAINT organization_members_org_id_fk
				FOREIGN KEY (org_id) REFERENCES organizations (id)
				ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS organization_teams (
			id ` + id + `,
			org_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT organization_teams_org_id_fk
				FOREIGN KEY (org_id) REFERENCES organizations (id)
				ON DELETE CASCADE,
			CONSTRAINT organization_teams_team_id_fk
				FOREIGN KEY (team_id) REFERENCES teams (id)
				ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS attribute_definitions (
			id ` + id + `,
			name TEXT NOT NULL,
			value_type TEXT NOT NULL,
			visibility TEXT NOT NULL DEFAULT 'public',
			required BOOLEAN NOT NULL DEFAULT false,
			owner_type TEXT NOT NULL,
			owner_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (owner_type, owner_id, name)
		);
		`

		for _, stmt := range strings.Split(schema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		return nil
	},
	Rollback: func(ctx context.Context, tx *db.Tx) error {
		tables := []string{
			"attribute_definitions",
			"organization_teams",
			"organization_members",
			"organizations",
			"team_tags",
			"team_moderators",
			"team_members",
			"teams",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
				return err
			}
		}
		return nil
	},
}
