package models

import "github.com/developmentseed/osm-teams/pkg/access"

// RoleAssignment is a (user, role) pair on some entity, as reported by the
// role ledger. Ordering is unspecified.
type RoleAssignment struct {
	OsmID int64       `db:"osm_id"`
	Role  access.Role `db:"role"`
}
