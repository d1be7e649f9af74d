package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/developmentseed/osm-teams/pkg/proto"
)

// ValidateName returns an error if the given team or organization name is
// invalid.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", proto.ErrInvalidInput)
	}

	return nil
}

// ParseBBox parses a comma separated "west,south,east,north" bounding box.
// An empty string means no bounds.
func ParseBBox(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: expected west,south,east,north", proto.ErrInvalidBounds)
	}

	bbox := make([]float64, 0, 4)
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", proto.ErrInvalidBounds, p)
		}
		bbox = append(bbox, f)
	}

	return bbox, nil
}

// ValidateBBox returns an error unless the bounds are empty or exactly four
// finite ordinates.
func ValidateBBox(bbox []float64) error {
	switch len(bbox) {
	case 0, 4:
		return nil
	default:
		return fmt.Errorf("%w: expected four ordinates, got %d", proto.ErrInvalidBounds, len(bbox))
	}
}
