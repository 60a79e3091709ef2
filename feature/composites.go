package feature

import (
	"github.com/twitchyliquid64/maker-panel/geom"
)

// translated decorates a Feature, shifting its geometry and surface
// features by a fixed offset. Every positioner (Array, Tuple, Column,
// Wrap) places children by wrapping them in a translated rather than
// mutating the child's own fields, so a single child tree can be
// placed more than once without aliasing.
type translated struct {
	f Feature
	d geom.Point
}

// Translate returns f shifted by d. A zero offset returns f itself.
func Translate(f Feature, d geom.Point) Feature {
	if d[0] == 0 && d[1] == 0 {
		return f
	}
	if t, ok := f.(*translated); ok {
		return &translated{f: t.f, d: geom.Pt(t.d[0]+d[0], t.d[1]+d[1])}
	}
	return &translated{f: f, d: d}
}

func (t *translated) Edge() geom.MultiPolygon      { return t.f.Edge().Translate(t.d) }
func (t *translated) Surfaces() []SurfaceFeature    { return translateAll(t.f.Surfaces(), t.d) }
func (t *translated) BBox() geom.BoundingBox        { return t.f.BBox().Translate(t.d) }

// Direction names one of the four axis-aligned directions used by
// Array and MountCut facing.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func axisDelta(d Direction, magnitude float64) geom.Point {
	switch d {
	case DirUp:
		return geom.Pt(0, -magnitude)
	case DirDown:
		return geom.Pt(0, magnitude)
	case DirLeft:
		return geom.Pt(-magnitude, 0)
	default:
		return geom.Pt(magnitude, 0)
	}
}

func isHorizontal(d Direction) bool { return d == DirLeft || d == DirRight }

// Array repeats Child Count times along Direction, advancing by the
// child's own bbox extent along that axis each step (spec.md §4.3).
type Array struct {
	Child     Feature
	Count     int
	Direction Direction
	VScore    bool
}

// NewArray validates Count and returns an Array.
func NewArray(child Feature, count int, dir Direction, vscore bool) (*Array, error) {
	if count < 1 {
		return nil, geometryErrorf("array: count must be >= 1, got %d", count)
	}
	return &Array{Child: child, Count: count, Direction: dir, VScore: vscore}, nil
}

func (a *Array) pitch() float64 {
	bb := a.Child.BBox()
	if isHorizontal(a.Direction) {
		return bb.Width()
	}
	return bb.Height()
}

func (a *Array) placements() []Feature {
	pitch := a.pitch()
	out := make([]Feature, a.Count)
	for k := 0; k < a.Count; k++ {
		out[k] = Translate(a.Child, axisDelta(a.Direction, pitch*float64(k)))
	}
	return out
}

func (a *Array) Edge() geom.MultiPolygon {
	var mps []geom.MultiPolygon
	for _, f := range a.placements() {
		mps = append(mps, f.Edge())
	}
	return geom.UnionAll(mps)
}

func (a *Array) Surfaces() []SurfaceFeature {
	var out []SurfaceFeature
	for _, f := range a.placements() {
		out = append(out, f.Surfaces()...)
	}
	out = append(out, a.VScoreLines()...)
	return out
}

func (a *Array) BBox() geom.BoundingBox {
	b := geom.EmptyBox
	for _, f := range a.placements() {
		b = b.Union(f.BBox())
	}
	return b
}

// VScoreLines returns one FabricationInstructions NamedAnnotation-style
// segment per inter-child boundary, when VScore is set.
func (a *Array) VScoreLines() []SurfaceFeature {
	if !a.VScore || a.Count < 2 {
		return nil
	}
	pitch := a.pitch()
	out := make([]SurfaceFeature, 0, a.Count-1)
	childBB := a.Child.BBox()
	for k := 1; k < a.Count; k++ {
		offset := axisDelta(a.Direction, pitch*float64(k)-pitch/2)
		bounds := childBB.Translate(offset)
		out = append(out, SurfaceFeature{
			Kind:   KindNamedAnnotation,
			Layer:  FabricationInstructions,
			Name:   "v-score",
			Bounds: bounds,
			Center: bounds.Center(),
		})
	}
	return out
}

// Tuple lays its children out left-to-right with adjacent bbox edges
// touching, each y-centered on the tuple's own horizontal axis.
type Tuple struct {
	Children []Feature
}

// NewTuple validates the child list is non-empty.
func NewTuple(children []Feature) (*Tuple, error) {
	if len(children) == 0 {
		return nil, geometryErrorf("tuple: empty")
	}
	return &Tuple{Children: children}, nil
}

func (t *Tuple) placements() []Feature {
	out := make([]Feature, len(t.Children))
	x := 0.0
	for i, c := range t.Children {
		bb := c.BBox()
		cx := x + bb.Width()/2
		out[i] = Translate(c, geom.Pt(cx-bb.Center()[0], -bb.Center()[1]))
		x += bb.Width()
	}
	// Re-center the whole tuple on x=0.
	total := x
	for i, f := range out {
		out[i] = Translate(f, geom.Pt(-total/2, 0))
	}
	return out
}

func (t *Tuple) Edge() geom.MultiPolygon {
	var mps []geom.MultiPolygon
	for _, f := range t.placements() {
		mps = append(mps, f.Edge())
	}
	return geom.UnionAll(mps)
}

func (t *Tuple) Surfaces() []SurfaceFeature {
	var out []SurfaceFeature
	for _, f := range t.placements() {
		out = append(out, f.Surfaces()...)
	}
	return out
}

func (t *Tuple) BBox() geom.BoundingBox {
	b := geom.EmptyBox
	for _, f := range t.placements() {
		b = b.Union(f.BBox())
	}
	return b
}

// ColumnAlignment sets how Column aligns its children's x extent.
type ColumnAlignment int

const (
	ColumnCenter ColumnAlignment = iota
	ColumnLeft
	ColumnRight
)

// Column stacks its children top-to-bottom with adjacent bbox edges
// touching, aligned per Alignment.
type Column struct {
	Alignment ColumnAlignment
	Children  []Feature
}

// NewColumn validates the child list is non-empty.
func NewColumn(alignment ColumnAlignment, children []Feature) (*Column, error) {
	if len(children) == 0 {
		return nil, geometryErrorf("column: empty")
	}
	return &Column{Alignment: alignment, Children: children}, nil
}

func (c *Column) placements() []Feature {
	out := make([]Feature, len(c.Children))
	y := 0.0
	for i, ch := range c.Children {
		bb := ch.BBox()
		cy := y + bb.Height()/2
		out[i] = Translate(ch, geom.Pt(-bb.Center()[0], cy-bb.Center()[1]))
		y += bb.Height()
	}
	total := y
	// Re-center vertically, then apply horizontal alignment.
	var maxW float64
	for _, ch := range c.Children {
		if w := ch.BBox().Width(); w > maxW {
			maxW = w
		}
	}
	for i, f := range out {
		dy := -total / 2
		var dx float64
		switch c.Alignment {
		case ColumnLeft:
			dx = -maxW / 2
			bb := c.Children[i].BBox()
			dx += bb.Width() / 2
		case ColumnRight:
			dx = maxW / 2
			bb := c.Children[i].BBox()
			dx -= bb.Width() / 2
		}
		out[i] = Translate(f, geom.Pt(dx, dy))
	}
	return out
}

func (c *Column) Edge() geom.MultiPolygon {
	var mps []geom.MultiPolygon
	for _, f := range c.placements() {
		mps = append(mps, f.Edge())
	}
	return geom.UnionAll(mps)
}

func (c *Column) Surfaces() []SurfaceFeature {
	var out []SurfaceFeature
	for _, f := range c.placements() {
		out = append(out, f.Surfaces()...)
	}
	return out
}

func (c *Column) BBox() geom.BoundingBox {
	b := geom.EmptyBox
	for _, f := range c.placements() {
		b = b.Union(f.BBox())
	}
	return b
}

// Negative marks its children's combined edge contribution as
// subtractive and drops their surface features (spec.md §3/§4.3).
// When every child is itself subtractive the marks cancel, so
// Negative{Negative{X}} contributes X's edge additively again.
type Negative struct {
	Children []Feature
}

// NewNegative validates the child list is non-empty.
func NewNegative(children []Feature) (*Negative, error) {
	if len(children) == 0 {
		return nil, geometryErrorf("negative: empty")
	}
	return &Negative{Children: children}, nil
}

func (n *Negative) Edge() geom.MultiPolygon {
	var mps []geom.MultiPolygon
	allSubtractive := true
	for _, c := range n.Children {
		e := c.Edge()
		allSubtractive = allSubtractive && e.Subtractive
		mps = append(mps, e)
	}
	mp := geom.UnionAll(mps)
	mp.Subtractive = !allSubtractive
	return mp
}

func (n *Negative) Surfaces() []SurfaceFeature { return nil }
func (n *Negative) BBox() geom.BoundingBox {
	b := geom.EmptyBox
	for _, c := range n.Children {
		b = b.Union(c.BBox())
	}
	return b
}

// Rotate rotates its children's combined edge geometry about the
// origin by Degrees (CCW). Surface feature positions are intentionally
// NOT rotated: they pass through at the untransformed child
// coordinates. This is documented, not accidental (spec.md §4.5) — do
// not "fix" it without a flag.
type Rotate struct {
	Degrees  float64
	Children []Feature
}

// NewRotate validates the child list is non-empty.
func NewRotate(degrees float64, children []Feature) (*Rotate, error) {
	if len(children) == 0 {
		return nil, geometryErrorf("rotate: empty")
	}
	return &Rotate{Degrees: degrees, Children: children}, nil
}

func (r *Rotate) Edge() geom.MultiPolygon {
	var mps []geom.MultiPolygon
	for _, c := range r.Children {
		mps = append(mps, c.Edge())
	}
	return geom.UnionAll(mps).Rotate(r.Degrees)
}

func (r *Rotate) Surfaces() []SurfaceFeature {
	var out []SurfaceFeature
	for _, c := range r.Children {
		out = append(out, c.Surfaces()...)
	}
	return out
}

func (r *Rotate) BBox() geom.BoundingBox { return r.Edge().BBox() }
