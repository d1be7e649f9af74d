package proto

// Org is an interface representing an organization.
type Org interface {
	// ID returns the organization's ID.
	ID() int64
	// Name returns the organization's name.
	Name() string
	// Description returns the organization's description.
	Description() string
}
