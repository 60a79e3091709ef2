package feature

import (
	"github.com/twitchyliquid64/maker-panel/geom"
)

// InnerSurface describes one entry of a primitive's surface-features
// list, already resolved to scalars by the evaluator. Exactly one of
// the kind-specific field groups is meaningful, selected by Kind.
type InnerSurface struct {
	Kind SurfaceKind

	HasDiameter bool    // KindDrillHit
	Diameter    float64 // KindDrillHit, meaningful when HasDiameter

	Width, Height float64 // KindSolderPad

	Text   string // KindLegend, empty for a bare "smiley"
	Smiley bool   // KindLegend
}

func resolveInner(center geom.Point, inner []InnerSurface) []SurfaceFeature {
	out := make([]SurfaceFeature, 0, len(inner))
	for _, s := range inner {
		switch s.Kind {
		case KindDrillHit:
			d := DefaultDrillDiameter
			if s.HasDiameter {
				d = s.Diameter
			}
			out = append(out, SurfaceFeature{Kind: KindDrillHit, Layer: DrillLayer, Center: center, Diameter: d})
		case KindSolderPad:
			out = append(out, SurfaceFeature{Kind: KindSolderPad, Layer: FrontCopper, Center: center, Width: s.Width, Height: s.Height})
			out = append(out, SurfaceFeature{Kind: KindDrillHit, Layer: DrillLayer, Center: center, Diameter: DefaultDrillDiameter})
		case KindLegend:
			out = append(out, SurfaceFeature{Kind: KindLegend, Layer: FrontLegend, Center: center, Text: s.Text, Smiley: s.Smiley})
		}
	}
	return out
}

// Rect is an axis-aligned rectangle centered on Center.
type Rect struct {
	Center        geom.Point
	Width, Height float64
	Inner         []InnerSurface
}

// NewRect validates dimensions and returns a Rect, or a GeometryError
// per spec.md §4.3 ("zero or negative dimensions ... → error").
func NewRect(center geom.Point, width, height float64, inner ...InnerSurface) (*Rect, error) {
	if width <= 0 || height <= 0 {
		return nil, geometryErrorf("rect: non-positive dimensions %gx%g", width, height)
	}
	return &Rect{Center: center, Width: width, Height: height, Inner: inner}, nil
}

func (r *Rect) Edge() geom.MultiPolygon {
	return geom.MultiPolygon{Polygons: []geom.Polygon{{Outer: geom.RectRing(r.Center, r.Width, r.Height)}}}
}

func (r *Rect) Surfaces() []SurfaceFeature { return resolveInner(r.Center, r.Inner) }
func (r *Rect) BBox() geom.BoundingBox     { return r.Edge().BBox() }

// Circle is a regular-polygon approximation of a circle centered on
// Center, tessellated by Segments (see CircleSegments).
type Circle struct {
	Center   geom.Point
	Radius   float64
	Segments int
	Inner    []InnerSurface
}

// NewCircle validates the radius and returns a Circle.
func NewCircle(center geom.Point, radius float64, inner ...InnerSurface) (*Circle, error) {
	if radius <= 0 {
		return nil, geometryErrorf("circle: non-positive radius %g", radius)
	}
	return &Circle{Center: center, Radius: radius, Segments: CircleSegments(radius), Inner: inner}, nil
}

func (c *Circle) Edge() geom.MultiPolygon {
	n := c.Segments
	if n <= 0 {
		n = CircleSegments(c.Radius)
	}
	return geom.MultiPolygon{Polygons: []geom.Polygon{{Outer: geom.CircleRingN(c.Center, c.Radius, n)}}}
}

func (c *Circle) Surfaces() []SurfaceFeature { return resolveInner(c.Center, c.Inner) }
func (c *Circle) BBox() geom.BoundingBox     { return c.Edge().BBox() }

// CircleSegments returns the default circle tessellation segment
// count, overridable package-wide for the quality/performance
// trade-off spec.md §9 leaves open (cmd/panelc exposes this as a
// flag).
var CircleSegments = geom.CircleSegments

// Triangle is an isoceles triangle centered on Center, base of Width
// on the bottom; a negative Height points the apex down.
type Triangle struct {
	Center        geom.Point
	Width, Height float64
	Inner         []InnerSurface
}

// NewTriangle validates dimensions and returns a Triangle. Height's
// sign is meaningful (flips the apex) so only Width is checked for
// positivity.
func NewTriangle(center geom.Point, width, height float64, inner ...InnerSurface) (*Triangle, error) {
	if width <= 0 || height == 0 {
		return nil, geometryErrorf("triangle: invalid dimensions %gx%g", width, height)
	}
	return &Triangle{Center: center, Width: width, Height: height, Inner: inner}, nil
}

func (t *Triangle) Edge() geom.MultiPolygon {
	return geom.MultiPolygon{Polygons: []geom.Polygon{{Outer: geom.TriangleRing(t.Center, t.Width, t.Height)}}}
}

func (t *Triangle) Surfaces() []SurfaceFeature { return resolveInner(t.Center, t.Inner) }
func (t *Triangle) BBox() geom.BoundingBox     { return t.Edge().BBox() }

// Facing names the direction a MountCut's keyhole recess opens
// toward.
type Facing int

const (
	FacingUp Facing = iota
	FacingDown
	FacingLeft
	FacingRight
)

// MountCut is a fixed keyhole cut-out sized for an M3 fastener: a
// rectangular recess of fixed width capped by a rounded end, whose
// overall depth equals Length, rotated per Facing. No separate
// parallel slots are cut beside the recess.
type MountCut struct {
	Center geom.Point
	Length float64
	Facing Facing
}

// mountCutBodyWidth is the fixed width of the keyhole body,
// independent of Length.
const mountCutBodyWidth = 6.0

// NewMountCut validates Length and returns a MountCut.
func NewMountCut(center geom.Point, length float64, facing Facing) (*MountCut, error) {
	if length <= 0 {
		return nil, geometryErrorf("mount_cut: non-positive length %g", length)
	}
	return &MountCut{Center: center, Length: length, Facing: facing}, nil
}

func (m *MountCut) Edge() geom.MultiPolygon {
	// The keyhole is modeled as a rectangular recess capped by a
	// semicircular mouth, built facing up then rotated into place.
	bodyW := mountCutBodyWidth
	recessR := bodyW / 2
	body := geom.RectRing(geom.Pt(0, m.Length/2-recessR/2), bodyW, m.Length-recessR)
	mouth := geom.CircleRingN(geom.Pt(0, m.Length-recessR), recessR, geom.CircleSegments(recessR))
	degrees := 0.0
	switch m.Facing {
	case FacingDown:
		degrees = 180
	case FacingLeft:
		degrees = 90
	case FacingRight:
		degrees = -90
	}
	body = body.Rotate(degrees)
	mouth = mouth.Rotate(degrees)
	mp := geom.UnionAll([]geom.MultiPolygon{
		{Polygons: []geom.Polygon{{Outer: body}}},
		{Polygons: []geom.Polygon{{Outer: mouth}}},
	})
	return mp.Translate(m.Center)
}

func (m *MountCut) Surfaces() []SurfaceFeature { return nil }
func (m *MountCut) BBox() geom.BoundingBox     { return m.Edge().BBox() }
