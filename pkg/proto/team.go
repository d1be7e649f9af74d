package proto

// Team is an interface representing a team.
type Team interface {
	// ID returns the team's ID.
	ID() int64
	// Name returns the team's name.
	Name() string
	// Bio returns the team's description.
	Bio() string
	// Hashtag returns the team's campaign tag.
	Hashtag() string
	// Location returns the team's geo point, if it has one.
	Location() (lng, lat float64, ok bool)
	// IsPrivate returns whether the team is private.
	IsPrivate() bool
}
