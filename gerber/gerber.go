// Package gerber writes Gerber RS274X files (for PCBs).
package gerber

import "os"

// MBB is a minimum bounding box, in millimeters.
type MBB struct {
	Min, Max Pt
}

func (m *MBB) extend(p Pt) {
	if p.X < m.Min.X {
		m.Min.X = p.X
	}
	if p.Y < m.Min.Y {
		m.Min.Y = p.Y
	}
	if p.X > m.Max.X {
		m.Max.X = p.X
	}
	if p.Y > m.Max.Y {
		m.Max.Y = p.Y
	}
}

// Intersects reports whether m and o overlap.
func (m *MBB) Intersects(o *MBB) bool {
	return m.Min.X <= o.Max.X && m.Max.X >= o.Min.X && m.Min.Y <= o.Max.Y && m.Max.Y >= o.Min.Y
}

// Gerber represents the layers needed to build a PCB.
type Gerber struct {
	// FilenamePrefix is the filename prefix for the Gerber design files.
	FilenamePrefix string
	// Layers represents the layers making up the Gerber design.
	Layers []*Layer
}

// New returns a new Gerber design.
// filenamePrefix is the base filename for all gerber files (e.g. "bifilar-coil").
func New(filenamePrefix string) *Gerber {
	return &Gerber{
		FilenamePrefix: filenamePrefix,
	}
}

func (g *Gerber) addLayer(suffix string) *Layer {
	l := &Layer{Filename: g.FilenamePrefix + suffix, g: g}
	g.Layers = append(g.Layers, l)
	return l
}

// WriteGerber writes every layer of the design to its own file in the
// current directory.
func (g *Gerber) WriteGerber() error {
	for _, l := range g.Layers {
		if err := l.Write(); err != nil {
			return err
		}
	}
	return nil
}

// WriteGerberDir writes every layer of the design into dir, creating it
// if necessary.
func (g *Gerber) WriteGerberDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, l := range g.Layers {
		if err := l.writeTo(dir); err != nil {
			return err
		}
	}
	return nil
}

// MBB returns the minimum bounding box over every primitive of every
// layer of the design.
func (g *Gerber) MBB() MBB {
	var mbb MBB
	first := true
	for _, l := range g.Layers {
		for _, p := range l.Primitives {
			pmbb := p.MBB()
			if first {
				mbb = pmbb
				first = false
				continue
			}
			mbb.extend(pmbb.Min)
			mbb.extend(pmbb.Max)
		}
	}
	return mbb
}
