package gerber

import (
	"testing"

	"github.com/twitchyliquid64/maker-panel/panel"
)

func TestFromRenderedOutline(t *testing.T) {
	r := &panel.Rendered{
		Outer: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
	}
	g := FromRendered("test", r)
	if len(g.Layers) != 1 {
		t.Fatalf("got %d layers, want 1 (outline only)", len(g.Layers))
	}
	if got, want := g.Layers[0].Filename, "test.gko"; got != want {
		t.Errorf("outline filename = %q, want %q", got, want)
	}
}

func TestFromRenderedRoutesSurfaceFeaturesByLayer(t *testing.T) {
	r := &panel.Rendered{
		Outer: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		SurfaceFeatures: []panel.RenderedSurface{
			{Kind: "DrillHit", Layer: "Drill", Center: [2]float64{5, 5}, Diameter: 1},
			{Kind: "SolderPad", Layer: "FrontCopper", Center: [2]float64{5, 5}, Width: 2, Height: 1},
		},
	}
	g := FromRendered("test", r)

	var drill, copper *Layer
	for _, l := range g.Layers {
		switch l.Filename {
		case "test.xln":
			drill = l
		case "test.gtl":
			copper = l
		}
	}
	if drill == nil || len(drill.Primitives) != 1 {
		t.Fatalf("drill layer missing or wrong primitive count: %v", drill)
	}
	if copper == nil || len(copper.Primitives) != 1 {
		t.Fatalf("copper layer missing or wrong primitive count: %v", copper)
	}
}

func TestFromRenderedNamedFeaturesLandOnFabLayer(t *testing.T) {
	r := &panel.Rendered{
		Outer:         [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		NamedFeatures: []panel.RenderedNamed{{Name: "mount-a", Bounds: [4]float64{1, 1, 2, 2}}},
	}
	g := FromRendered("test", r)
	var fab *Layer
	for _, l := range g.Layers {
		if l.Filename == "test.fab" {
			fab = l
		}
	}
	if fab == nil || len(fab.Primitives) != 1 {
		t.Fatalf("fab layer missing or wrong primitive count: %v", fab)
	}
}
