package topology

import (
	"slices"
)

// Layout constants of the cluster panel.
const (
	// DefaultSpacing is the grid pitch of the root (cluster level) topology.
	DefaultSpacing = 35.0

	// NestedSpacing is the grid pitch of a cluster's own node topology.
	NestedSpacing = 110.0

	// Missing is reported alongside false for members absent from a topology.
	Missing = -1.0
)

// DefaultOrigin is the canvas origin of the root topology.
var DefaultOrigin = Point{X: 200, Y: -100}

// Point is a canvas position or offset in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Member is anything a Topology can place. Key is both the identity and the
// sort key.
type Member interface {
	Key() string
}

// Extended is a member that occupies space of its own, such as a cluster with
// a nested node topology.
type Extended interface {
	Member
	Extent() Point
}

// Topology positions a collection of members on the banded grid.
type Topology[T Member] struct {
	origin  Point
	spacing float64
	members []T
	sorted  []T // nil when members changed since the last sort
}

// New creates an empty topology with the given origin and spacing.
func New[T Member](origin Point, spacing float64) *Topology[T] {
	return &Topology[T]{origin: origin, spacing: spacing}
}

// Origin returns the canvas origin of the grid.
func (t *Topology[T]) Origin() Point { return t.origin }

// SetOrigin moves the grid. Member order is unaffected.
func (t *Topology[T]) SetOrigin(p Point) { t.origin = p }

// Spacing returns the grid pitch.
func (t *Topology[T]) Spacing() float64 { return t.spacing }

// Add appends m to the collection. No deduplication is performed.
func (t *Topology[T]) Add(m T) {
	t.members = append(t.members, m)
	t.sorted = nil
}

// Len returns the number of members.
func (t *Topology[T]) Len() int { return len(t.members) }

// Members returns the members in insertion order.
func (t *Topology[T]) Members() []T { return slices.Clone(t.members) }

// Sorted returns the members ordered by name. The returned slice is a copy;
// the insertion order kept by the topology is never changed.
func (t *Topology[T]) Sorted() []T {
	if t.sorted == nil {
		t.sorted = slices.Clone(t.members)
		slices.SortStableFunc(t.sorted, func(a, b T) int {
			return CompareNames(a.Key(), b.Key())
		})
	}
	return slices.Clone(t.sorted)
}

// Index returns the position of the member named key in sorted order.
func (t *Topology[T]) Index(key string) (int, bool) {
	t.Sorted()
	for i, m := range t.sorted {
		if m.Key() == key {
			return i, true
		}
	}
	return int(Missing), false
}

// Transform returns the canvas position of m.
func (t *Topology[T]) Transform(m T) (Point, bool) {
	i, ok := t.Index(m.Key())
	if !ok {
		return Point{X: Missing, Y: Missing}, false
	}
	return t.origin.Add(Band(i, t.spacing)), true
}

// TransformX returns the horizontal canvas position of m.
func (t *Topology[T]) TransformX(m T) (float64, bool) {
	p, ok := t.Transform(m)
	return p.X, ok
}

// TransformY returns the vertical canvas position of m.
func (t *Topology[T]) TransformY(m T) (float64, bool) {
	p, ok := t.Transform(m)
	return p.Y, ok
}

// Extent returns the largest origin-relative offset of any member on each
// axis. An empty topology has a zero extent.
func (t *Topology[T]) Extent() Point {
	var ext Point
	for i := range t.members {
		b := Band(i, t.spacing)
		ext.X = max(ext.X, b.X)
		ext.Y = max(ext.Y, b.Y)
	}
	return ext
}

// ClusterTransform returns the canvas position of c inside t. Offset positions
// additionally include c's own extent on that axis.
func ClusterTransform[T Extended](t *Topology[T], c T) (Point, bool) {
	i, ok := t.Index(c.Key())
	if !ok {
		return Point{X: Missing, Y: Missing}, false
	}
	b := Band(i, t.spacing)
	ext := c.Extent()
	p := t.origin
	if shiftsX(i) {
		p.X += ext.X + b.X
	}
	if shiftsY(i) {
		p.Y += ext.Y + b.Y
	}
	return p, true
}

// ClusterTransformX returns the horizontal canvas position of c inside t.
func ClusterTransformX[T Extended](t *Topology[T], c T) (float64, bool) {
	p, ok := ClusterTransform(t, c)
	return p.X, ok
}

// ClusterTransformY returns the vertical canvas position of c inside t.
func ClusterTransformY[T Extended](t *Topology[T], c T) (float64, bool) {
	p, ok := ClusterTransform(t, c)
	return p.Y, ok
}

// Band returns the grid offset of the member at sorted position index.
// Odd positions shift right and positions 2 and 3 of each group of four shift
// down, by one spacing unit per completed group plus one.
func Band(index int, spacing float64) Point {
	step := spacing * float64(index/4+1)
	var p Point
	if shiftsX(index) {
		p.X = step
	}
	if shiftsY(index) {
		p.Y = step
	}
	return p
}

func shiftsX(index int) bool { return index%2 != 0 }

func shiftsY(index int) bool { return index%4 >= 2 }

// CompareNames orders two names byte-wise. An empty name on either side
// always compares as less, so the relation is not antisymmetric for empty
// names.
func CompareNames(a, b string) int {
	if a == "" || b == "" {
		return -1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
