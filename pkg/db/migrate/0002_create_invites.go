package migrate

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/db"
)

const (
	createInvitesName    = "create invites"
	createInvitesVersion = 2
)

var createInvites = Migration{
	Version: createInvitesVersion,
	Name:    createInvitesName,
	Migrate: func(ctx context.Context, tx *db.Tx) error {
		schema := `
		CREATE TABLE IF NOT EXISTS team_invites (
			token TEXT PRIMARY KEY,
			team_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP NOT NULL,
			CONSTRAINT team_invites_team_id_fk
				FOREIGN KEY (team_id) REFERENCES teams (id)
				ON DELETE CASCADE
		)`

		_, err := tx.ExecContext(ctx, schema)
		return err
	},
	Rollback: func(ctx context.Context, tx *db.Tx) error {
		_, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS team_invites")
		return err
	},
}
