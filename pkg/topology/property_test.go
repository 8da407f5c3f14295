package topology

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBandingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("even positions keep the origin column", prop.ForAll(
		func(i int, spacing float64) bool {
			b := Band(i, spacing)
			if i%2 == 0 {
				return b.X == 0
			}
			return b.X == spacing*float64(i/4+1)
		},
		gen.IntRange(0, 10000),
		gen.Float64Range(1, 500),
	))

	properties.Property("first half of each tile keeps the origin row", prop.ForAll(
		func(i int, spacing float64) bool {
			b := Band(i, spacing)
			if i%4 < 2 {
				return b.Y == 0
			}
			return b.Y == spacing*float64(i/4+1)
		},
		gen.IntRange(0, 10000),
		gen.Float64Range(1, 500),
	))

	properties.Property("sorting is a function of names only", prop.ForAll(
		func(names []string) bool {
			forward := New[name](Point{}, 1)
			backward := New[name](Point{}, 1)
			for i := range names {
				forward.Add(name(names[i]))
				backward.Add(name(names[len(names)-1-i]))
			}
			a, b := forward.Sorted(), backward.Sorted()
			return slices.Equal(a, b) && slices.Equal(a, forward.Sorted()) &&
				slices.IsSortedFunc(a, func(x, y name) int { return CompareNames(string(x), string(y)) })
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
