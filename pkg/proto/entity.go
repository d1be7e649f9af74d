package proto

// EntityKind tags which kind of entity a role assignment refers to.
type EntityKind int

const (
	// KindTeam is a team entity.
	KindTeam EntityKind = iota

	// KindOrg is an organization entity.
	KindOrg
)

// String returns the string representation of the entity kind.
func (k EntityKind) String() string {
	switch k {
	case KindTeam:
		return "team"
	case KindOrg:
		return "org"
	default:
		return "unknown"
	}
}

// ParseEntityKind parses an entity kind string.
func ParseEntityKind(s string) EntityKind {
	switch s {
	case "team":
		return KindTeam
	case "org":
		return KindOrg
	default:
		return EntityKind(-1)
	}
}
