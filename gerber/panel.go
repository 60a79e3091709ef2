package gerber

import (
	"github.com/twitchyliquid64/maker-panel/panel"

	_ "github.com/gmlewis/go-fonts-f/fonts/freeserif"
)

// legendFont names the registered font (see gerber/fonts.go's Fonts map,
// populated by the blank import above) used to render legend text and
// fabrication-instruction labels.
const legendFont = "freeserif"

// layerFor maps a spec layer name to the Gerber layer it is written to,
// lazily creating it on first use.
func layerFor(g *Gerber, cache map[string]*Layer, name string) *Layer {
	if l, ok := cache[name]; ok {
		return l
	}
	var l *Layer
	switch name {
	case "FrontCopper":
		l = g.TopCopper()
	case "FrontMask":
		l = g.TopSolderMask()
	case "FrontLegend":
		l = g.TopSilkscreen()
	case "BackCopper":
		l = g.BottomCopper()
	case "BackMask":
		l = g.BottomSolderMask()
	case "BackLegend":
		l = g.BottomSilkscreen()
	case "FabricationInstructions":
		l = g.FabricationInstructions()
	default: // "Drill", or anything unrecognized, lands on the drill layer.
		l = g.Drill()
	}
	cache[name] = l
	return l
}

// FromRendered builds a Gerber design out of a combined panel, ready for
// Gerber.WriteGerber or Gerber.WriteGerberDir.
func FromRendered(prefix string, r *panel.Rendered) *Gerber {
	g := New(prefix)

	outline := g.Outline()
	outline.Add(Polygon(0, 0, true, toGerberPts(r.Outer), 0))
	for _, hole := range r.Inners {
		outline.Add(Polygon(0, 0, true, toGerberPts(hole), 0))
	}

	layers := map[string]*Layer{}
	for _, sf := range r.SurfaceFeatures {
		l := layerFor(g, layers, sf.Layer)
		switch sf.Kind {
		case "DrillHit":
			l.Add(Circle(sf.Center[0], sf.Center[1], sf.Diameter))
		case "SolderPad":
			l.Add(Polygon(sf.Center[0], sf.Center[1], true, rectPoints(0, 0, sf.Width, sf.Height), 0))
		case "Legend":
			if len(sf.Polygons) > 0 {
				for _, poly := range sf.Polygons {
					l.Add(Polygon(0, 0, true, toGerberPts(poly), 0))
				}
			} else if sf.Text != "" {
				l.Add(Text(sf.Center[0], sf.Center[1], 1.0, sf.Text, legendFont, 1.5))
			}
		}
	}
	for _, nf := range r.NamedFeatures {
		l := layerFor(g, layers, "FabricationInstructions")
		cx := (nf.Bounds[0] + nf.Bounds[2]) / 2
		cy := (nf.Bounds[1] + nf.Bounds[3]) / 2
		l.Add(Text(cx, cy, 1.0, nf.Name, legendFont, 1.0))
	}

	return g
}

func toGerberPts(pts [][2]float64) []Pt {
	out := make([]Pt, len(pts))
	for i, p := range pts {
		out[i] = Pt{X: p[0], Y: p[1]}
	}
	return out
}
