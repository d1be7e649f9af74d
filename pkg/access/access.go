// Package access defines the roles and actions used for authorization
// decisions on teams and organizations.
package access

import (
	"encoding"
	"errors"
)

// Role is a role a user holds on a team or an organization.
type Role int // nolint: revive

const (
	// Member is a plain team member with read-only privileges.
	Member Role = iota

	// Moderator has full management rights on a team.
	Moderator

	// Manager has membership and profile management rights on an
	// organization and its teams, excluding deletion.
	Manager

	// Owner has full rights on an organization including deletion.
	// Every organization keeps at least one owner at all times.
	Owner
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case Member:
		return "member"
	case Moderator:
		return "moderator"
	case Manager:
		return "manager"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// ParseRole parses a role string.
func ParseRole(s string) Role {
	switch s {
	case "member":
		return Member
	case "moderator":
		return Moderator
	case "manager":
		return Manager
	case "owner":
		return Owner
	default:
		return Role(-1)
	}
}

var (
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
)

// ErrInvalidRole is returned when an invalid role is provided.
var ErrInvalidRole = errors.New("invalid role")

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	l := ParseRole(string(text))
	if l < 0 {
		return ErrInvalidRole
	}

	*r = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}
