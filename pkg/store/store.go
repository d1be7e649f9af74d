// Package store defines the storage interfaces for teams, organizations,
// roles, attribute definitions, and invitations.
package store

// Store is an interface for managing teams, organizations, and their
// membership graph.
type Store interface {
	TeamStore
	OrgStore
	RoleStore
	AttributeStore
	InviteStore
}
