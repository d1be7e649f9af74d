package access

import "errors"

// Action is an operation a user may attempt on a team or an organization.
type Action int // nolint: revive

const (
	// View reads an entity and its projections.
	View Action = iota

	// Update modifies an entity's profile fields and attribute definitions.
	Update

	// Delete destroys an entity.
	Delete

	// Members mutates an entity's membership and roles.
	Members
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case View:
		return "view"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Members:
		return "members"
	default:
		return "unknown"
	}
}

// ParseAction parses an action string.
func ParseAction(s string) Action {
	switch s {
	case "view":
		return View
	case "update":
		return Update
	case "delete":
		return Delete
	case "members":
		return Members
	default:
		return Action(-1)
	}
}

// ErrInvalidAction is returned when an invalid action is provided.
var ErrInvalidAction = errors.New("invalid action")
