package utils

import (
	"errors"
	"testing"

	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/matryer/is"
)

func TestValidateName(t *testing.T) {
	is := is.New(t)
	is.NoErr(ValidateName("local mappers"))
	is.True(errors.Is(ValidateName(""), proto.ErrInvalidInput))
	is.True(errors.Is(ValidateName("   "), proto.ErrInvalidInput))
}

func TestParseBBox(t *testing.T) {
	is := is.New(t)

	bbox, err := ParseBBox("-10.5,40,2,45.25")
	is.NoErr(err)
	is.Equal(bbox, []float64{-10.5, 40, 2, 45.25})

	bbox, err = ParseBBox("")
	is.NoErr(err)
	is.Equal(len(bbox), 0)

	_, err = ParseBBox("-10.5,40,2")
	is.True(errors.Is(err, proto.ErrInvalidBounds))
	is.True(errors.Is(err, proto.ErrInvalidInput))

	_, err = ParseBBox("a,b,c,d")
	is.True(errors.Is(err, proto.ErrInvalidBounds))
}

func TestValidateBBox(t *testing.T) {
	is := is.New(t)
	is.NoErr(ValidateBBox(nil))
	is.NoErr(ValidateBBox([]float64{1, 2, 3, 4}))
	is.True(errors.Is(ValidateBBox([]float64{1, 2}), proto.ErrInvalidBounds))
}
