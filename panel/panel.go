// Package panel implements the Combiner (spec.md §4.4): it partitions
// the evaluator's concrete feature.Feature list into additive and
// subtractive contributions, unions and subtracts them into a single
// outline, and filters the surface-feature list down to what survives
// inside that outline.
package panel

import (
	"github.com/twitchyliquid64/maker-panel/feature"
	"github.com/twitchyliquid64/maker-panel/geom"
)

// DisjointGeometry reports that the combined additive/subtractive
// edges did not reduce to a single connected region (spec.md §7).
// Convex hull mode keeps the additive union connected, but a
// subtraction that splits or removes the hull is still reported as
// DisjointGeometry.
type DisjointGeometry struct{}

func (DisjointGeometry) Error() string {
	return "combined geometry is not a single connected region"
}

// Rendered is the language-neutral output structure spec.md §6
// describes, ready for JSON marshaling by an external emitter.
type Rendered struct {
	Outer          [][2]float64      `json:"outer"`
	Inners         [][][2]float64    `json:"inners"`
	SurfaceFeatures []RenderedSurface `json:"surface_features"`
	NamedFeatures  []RenderedNamed   `json:"named_features"`
}

// RenderedSurface is one entry of Rendered.SurfaceFeatures. Kind
// mirrors feature.SurfaceKind's tagged-variant names directly
// (DrillHit, SolderPad, Legend); NamedAnnotation features go to
// Rendered.NamedFeatures instead. Only the fields relevant to that
// Kind are populated.
type RenderedSurface struct {
	Kind     string         `json:"kind"`
	Layer    string         `json:"layer,omitempty"`
	Center   [2]float64     `json:"center"`
	Diameter float64        `json:"diameter,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Text     string         `json:"text,omitempty"`
	Smiley   bool           `json:"smiley,omitempty"`
	Polygons [][][2]float64 `json:"polygons,omitempty"`
}

// RenderedNamed is one entry of Rendered.NamedFeatures.
type RenderedNamed struct {
	Name   string     `json:"name"`
	Bounds [4]float64 `json:"bounds"`
}

// Combine runs the Combiner algorithm over feats (the ordered
// top-level features produced by eval.Eval), honoring convexHull
// (spec.md §4.4).
func Combine(feats []feature.Feature, convexHull bool) (*Rendered, error) {
	var additive, subtractive []geom.MultiPolygon
	for _, f := range feats {
		mp := f.Edge()
		if mp.Empty() {
			continue
		}
		if mp.Subtractive {
			subtractive = append(subtractive, mp)
		} else {
			additive = append(additive, mp)
		}
	}

	union := geom.UnionAll(additive)
	if convexHull {
		union = geom.ConvexHull(union)
	}
	final := geom.Difference(union, geom.UnionAll(subtractive))

	if !convexHull && len(final.Polygons) != 1 {
		return nil, DisjointGeometry{}
	}

	var outline geom.Polygon
	switch {
	case len(final.Polygons) == 1:
		outline = final.Polygons[0]
	case len(final.Polygons) > 1:
		// Hull mode guarantees connectivity for the additive union,
		// but a pathological subtraction could still split it; widest
		// polygon by area wins and the rest are dropped silently would
		// hide data, so report it the same as the disjoint case.
		return nil, DisjointGeometry{}
	default:
		return nil, DisjointGeometry{}
	}

	rendered := &Rendered{
		Outer:  ringToPoints(outline.Outer),
		Inners: make([][][2]float64, len(outline.Holes)),
	}
	for i, h := range outline.Holes {
		rendered.Inners[i] = ringToPoints(h)
	}

	for _, f := range feats {
		for _, sf := range f.Surfaces() {
			if !final.ContainsPoint(sf.Center) {
				continue
			}
			rendered.append(sf)
		}
	}
	return rendered, nil
}

func ringToPoints(r geom.Ring) [][2]float64 {
	out := make([][2]float64, len(r))
	for i, p := range r {
		out[i] = [2]float64{p[0], p[1]}
	}
	return out
}

func (r *Rendered) append(sf feature.SurfaceFeature) {
	switch sf.Kind {
	case feature.KindDrillHit:
		r.SurfaceFeatures = append(r.SurfaceFeatures, RenderedSurface{
			Kind: "DrillHit", Layer: sf.Layer.String(),
			Center: [2]float64{sf.Center[0], sf.Center[1]}, Diameter: sf.Diameter,
		})
	case feature.KindSolderPad:
		r.SurfaceFeatures = append(r.SurfaceFeatures, RenderedSurface{
			Kind: "SolderPad", Layer: sf.Layer.String(),
			Center: [2]float64{sf.Center[0], sf.Center[1]}, Width: sf.Width, Height: sf.Height,
		})
	case feature.KindLegend:
		polys := make([][][2]float64, len(sf.Polygons.Polygons))
		for i, p := range sf.Polygons.Polygons {
			polys[i] = ringToPoints(p.Outer)
		}
		r.SurfaceFeatures = append(r.SurfaceFeatures, RenderedSurface{
			Kind: "Legend", Layer: sf.Layer.String(),
			Center: [2]float64{sf.Center[0], sf.Center[1]}, Text: sf.Text, Smiley: sf.Smiley,
			Polygons: polys,
		})
	case feature.KindNamedAnnotation:
		r.NamedFeatures = append(r.NamedFeatures, RenderedNamed{
			Name:   sf.Name,
			Bounds: [4]float64{sf.Bounds.MinX, sf.Bounds.MinY, sf.Bounds.MaxX, sf.Bounds.MaxY},
		})
	}
}
