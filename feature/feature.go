// Package feature implements the polymorphic feature tree described in
// spec.md §3/§4.3: a set of concrete node types that each answer three
// queries — Edge, Surfaces, BBox — over a resolved, immutable geometry
// tree. Composition (Array, Tuple, Column, Wrap, Negative, Rotate)
// lays out and combines child features; only Evaluator (package eval)
// constructs these from a parsed program.
package feature

import (
	"fmt"

	"github.com/twitchyliquid64/maker-panel/geom"
)

// Feature is any node of the resolved geometry tree.
type Feature interface {
	// Edge returns the feature's contribution to the panel outline. A
	// pure surface-bearing feature (none currently exist as top-level
	// nodes) may return an empty MultiPolygon.
	Edge() geom.MultiPolygon
	// Surfaces returns the feature's surface features, in absolute
	// coordinates.
	Surfaces() []SurfaceFeature
	// BBox returns the feature's bounding box; equal to Edge().BBox()
	// for every geometry-bearing feature.
	BBox() geom.BoundingBox
}

// GeometryError reports a malformed feature: zero/negative dimensions,
// an empty composite container, or rotation applied to a non-geometry
// node (spec.md §7).
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string { return "geometry: " + e.Msg }

func geometryErrorf(format string, args ...interface{}) error {
	return &GeometryError{Msg: fmt.Sprintf(format, args...)}
}

// Layer identifies which fabrication layer a SurfaceFeature belongs
// to.
type Layer int

const (
	FrontCopper Layer = iota
	FrontMask
	FrontLegend
	BackCopper
	BackMask
	BackLegend
	FabricationInstructions
	DrillLayer
)

func (l Layer) String() string {
	switch l {
	case FrontCopper:
		return "FrontCopper"
	case FrontMask:
		return "FrontMask"
	case FrontLegend:
		return "FrontLegend"
	case BackCopper:
		return "BackCopper"
	case BackMask:
		return "BackMask"
	case BackLegend:
		return "BackLegend"
	case FabricationInstructions:
		return "FabricationInstructions"
	case DrillLayer:
		return "Drill"
	default:
		return "?"
	}
}

// SurfaceKind discriminates the tagged variants of SurfaceFeature.
type SurfaceKind int

const (
	KindDrillHit SurfaceKind = iota
	KindSolderPad
	KindLegend
	KindNamedAnnotation
)

// SurfaceFeature is one overlay attached to the inside of a geometry
// feature: a drill hit, solder pad, legend marking, or a named
// annotation reported for tooling (spec.md §3).
type SurfaceFeature struct {
	Kind   SurfaceKind
	Layer  Layer
	Center geom.Point

	Diameter float64 // KindDrillHit

	Width, Height float64 // KindSolderPad

	Polygons geom.MultiPolygon // KindLegend
	Text     string            // KindLegend, empty for a bare "smiley"
	Smiley   bool              // KindLegend

	Name   string          // KindNamedAnnotation
	Bounds geom.BoundingBox // KindNamedAnnotation
}

// Translate returns a copy of s shifted by d.
func (s SurfaceFeature) Translate(d geom.Point) SurfaceFeature {
	out := s
	out.Center = geom.Pt(s.Center[0]+d[0], s.Center[1]+d[1])
	if !s.Polygons.Empty() {
		out.Polygons = s.Polygons.Translate(d)
	}
	if !s.Bounds.Empty() {
		out.Bounds = s.Bounds.Translate(d)
	}
	return out
}

func translateAll(fs []SurfaceFeature, d geom.Point) []SurfaceFeature {
	out := make([]SurfaceFeature, len(fs))
	for i, f := range fs {
		out[i] = f.Translate(d)
	}
	return out
}

// DefaultDrillDiameter is substituted for an unspecified `h` drill
// diameter, per spec.md §8 scenario 2.
const DefaultDrillDiameter = 3.0
