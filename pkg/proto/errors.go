package proto

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the user is not authorized to perform action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrOrgNotFound is returned when an organization is not found.
	ErrOrgNotFound = errors.New("organization not found")
	// ErrAttributeNotFound is returned when an attribute definition is not found.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrInviteNotFound is returned when an invitation is not found or expired.
	ErrInviteNotFound = errors.New("invite not found")

	// ErrInvalidInput is returned when the caller provides malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidBounds is returned when a bounding box does not have exactly
	// four components.
	ErrInvalidBounds = fmt.Errorf("%w: bounding box must be west,south,east,north", ErrInvalidInput)

	// ErrConstraintViolation is returned when a mutation would break a
	// membership invariant. It is never partially applied.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrLastOwner is returned when revoking the only owner of an organization.
	ErrLastOwner = fmt.Errorf("%w: organizations must retain at least one owner", ErrConstraintViolation)
	// ErrLastModerator is returned when revoking the only moderator of a team.
	ErrLastModerator = fmt.Errorf("%w: teams must retain at least one moderator", ErrConstraintViolation)
	// ErrTeamHasOrg is returned when associating a team that already belongs
	// to an organization.
	ErrTeamHasOrg = fmt.Errorf("%w: team already belongs to an organization", ErrConstraintViolation)
	// ErrDuplicateAttribute is returned when defining an attribute whose name
	// is already taken on the same entity.
	ErrDuplicateAttribute = fmt.Errorf("%w: attribute name already defined", ErrConstraintViolation)
)
