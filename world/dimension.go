package world

import (
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	dfworld "github.com/df-mc/dragonfly/server/world"
)

// RangeOf returns the build height range of the dimension with the name passed. Unknown names
// resolve to the overworld.
func RangeOf(dimension string) cube.Range {
	return DimensionOf(dimension).Range()
}

// DimensionOf returns the dragonfly dimension with the name passed.
func DimensionOf(dimension string) dfworld.Dimension {
	switch strings.ToLower(dimension) {
	case "nether":
		return dfworld.Nether
	case "end", "the_end":
		return dfworld.End
	default:
		return dfworld.Overworld
	}
}
