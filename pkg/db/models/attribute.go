package models

import "time"

// AttributeDefinition is a named, typed profile attribute scoped to a team or
// an organization. Only definitions are stored, never values.
type AttributeDefinition struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	ValueType  string    `db:"value_type"`
	Visibility string    `db:"visibility"`
	Required   bool      `db:"required"`
	OwnerType  string    `db:"owner_type"`
	OwnerID    int64     `db:"owner_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
