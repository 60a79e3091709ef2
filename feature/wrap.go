package feature

import (
	"math"

	"github.com/twitchyliquid64/maker-panel/geom"
)

// Side names the anchor point a Wrap Placement attaches its child to,
// relative to the center feature's bounding box.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
	SideMinTop
	SideMaxTop
	SideMinBottom
	SideMaxBottom
	SideMinLeft
	SideMaxLeft
	SideMinRight
	SideMaxRight
	SideCenter
	SideAngle
)

// PlacementAlignment controls how far a Placement's child sits from
// its anchor point along the normal direction.
type PlacementAlignment int

const (
	// AlignOverlap (default) centers the child on the anchor point
	// plus Offset: at Offset 0 the child straddles the boundary,
	// half inside and half outside.
	AlignOverlap PlacementAlignment = iota
	// AlignInterior shifts the child fully inside the center feature,
	// its outward edge touching the anchor.
	AlignInterior
	// AlignExterior shifts the child fully outside, its inward edge
	// touching the anchor.
	AlignExterior
)

// Placement is one entry of a Wrap's placement list.
type Placement struct {
	Side      Side
	AngleDeg  float64 // used when Side == SideAngle, degrees CCW from +x
	Offset    float64
	Alignment PlacementAlignment
	Child     Feature
}

// Wrap positions Center at the origin and arranges each Placement's
// child around its bounding box (spec.md §3/§4.3).
type Wrap struct {
	Center     Feature
	Placements []Placement
}

// NewWrap validates the placement list is non-empty.
func NewWrap(center Feature, placements []Placement) (*Wrap, error) {
	if len(placements) == 0 {
		return nil, geometryErrorf("wrap: empty")
	}
	return &Wrap{Center: center, Placements: placements}, nil
}

// anchor returns the point on bb's boundary (or its centroid, for
// SideCenter) that side refers to, together with the outward unit
// normal at that point.
func anchor(bb geom.BoundingBox, p Placement) (pt, outward geom.Point) {
	cx, cy := bb.Center()[0], bb.Center()[1]
	switch p.Side {
	case SideTop:
		return geom.Pt(cx, bb.MinY), geom.Pt(0, -1)
	case SideBottom:
		return geom.Pt(cx, bb.MaxY), geom.Pt(0, 1)
	case SideLeft:
		return geom.Pt(bb.MinX, cy), geom.Pt(-1, 0)
	case SideRight:
		return geom.Pt(bb.MaxX, cy), geom.Pt(1, 0)
	case SideMinTop:
		return geom.Pt(bb.MinX, bb.MinY), geom.Pt(0, -1)
	case SideMaxTop:
		return geom.Pt(bb.MaxX, bb.MinY), geom.Pt(0, -1)
	case SideMinBottom:
		return geom.Pt(bb.MinX, bb.MaxY), geom.Pt(0, 1)
	case SideMaxBottom:
		return geom.Pt(bb.MaxX, bb.MaxY), geom.Pt(0, 1)
	case SideMinLeft:
		return geom.Pt(bb.MinX, bb.MinY), geom.Pt(-1, 0)
	case SideMaxLeft:
		return geom.Pt(bb.MinX, bb.MaxY), geom.Pt(-1, 0)
	case SideMinRight:
		return geom.Pt(bb.MaxX, bb.MinY), geom.Pt(1, 0)
	case SideMaxRight:
		return geom.Pt(bb.MaxX, bb.MaxY), geom.Pt(1, 0)
	case SideCenter:
		return geom.Pt(cx, cy), geom.Pt(0, 0)
	default:
		return geom.Pt(cx, cy), geom.Pt(0, 0)
	}
}

// normalExtent returns half of childBB's extent along outward's axis,
// the distance from the child's own center to its edge in that
// direction.
func normalExtent(childBB geom.BoundingBox, outward geom.Point) float64 {
	if outward[0] != 0 {
		return childBB.Width() / 2
	}
	return childBB.Height() / 2
}

func (w *Wrap) placements() []Feature {
	centerBB := w.Center.BBox()
	out := make([]Feature, 0, len(w.Placements)+1)
	out = append(out, w.Center)
	for _, p := range w.Placements {
		childBB := p.Child.BBox()

		if p.Side == SideAngle {
			c := centerBB.Center()
			rad := p.AngleDeg * math.Pi / 180
			target := geom.Pt(c[0]+p.Offset*math.Cos(rad), c[1]+p.Offset*math.Sin(rad))
			out = append(out, Translate(p.Child, geom.Pt(target[0]-childBB.Center()[0], target[1]-childBB.Center()[1])))
			continue
		}
		if p.Side == SideCenter {
			c := centerBB.Center()
			out = append(out, Translate(p.Child, geom.Pt(c[0]-childBB.Center()[0], c[1]-childBB.Center()[1])))
			continue
		}

		pt, outward := anchor(centerBB, p)
		half := normalExtent(childBB, outward)
		dist := p.Offset
		switch p.Alignment {
		case AlignInterior:
			dist -= half
		case AlignExterior:
			dist += half
		}
		target := geom.Pt(pt[0]+outward[0]*dist, pt[1]+outward[1]*dist)
		out = append(out, Translate(p.Child, geom.Pt(target[0]-childBB.Center()[0], target[1]-childBB.Center()[1])))
	}
	return out
}

func (w *Wrap) Edge() geom.MultiPolygon {
	var mps []geom.MultiPolygon
	for _, f := range w.placements() {
		mps = append(mps, f.Edge())
	}
	return geom.UnionAll(mps)
}

func (w *Wrap) Surfaces() []SurfaceFeature {
	var out []SurfaceFeature
	for _, f := range w.placements() {
		out = append(out, f.Surfaces()...)
	}
	return out
}

func (w *Wrap) BBox() geom.BoundingBox {
	b := geom.EmptyBox
	for _, f := range w.placements() {
		b = b.Union(f.BBox())
	}
	return b
}
