package gerber

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Layer represents a printed circuit board layer.
type Layer struct {
	// Filename is the filename of the Gerber layer.
	Filename string
	// Primitives represents the collection of primitives.
	Primitives []Primitive

	g *Gerber // Root Gerber object.
}

// Add adds primitives to a layer.
func (l *Layer) Add(primitives ...Primitive) {
	l.Primitives = append(l.Primitives, primitives...)
}

// Write writes a layer to its corresponding file in the current directory.
func (l *Layer) Write() error {
	return l.writeTo(".")
}

func (l *Layer) writeTo(dir string) error {
	f, err := os.Create(filepath.Join(dir, l.Filename))
	if err != nil {
		return err
	}
	defer f.Close()
	return l.WriteTo(f)
}

// WriteTo writes the layer's RS274X content to w. Used by callers that
// bundle layers themselves, such as a zip archive writer.
func (l *Layer) WriteTo(w io.Writer) error {
	fmt.Fprintf(w, "%%FSLAX46Y46*%%\n")
	fmt.Fprintf(w, "%%MOMM*%%\n")
	fmt.Fprintf(w, "G04 Layer %s*\n", l.Filename)
	fmt.Fprintf(w, "%%LPD*%%\n")
	for _, p := range l.Primitives {
		if err := p.Write(w); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "M02*\n")
	return nil
}

// TopCopper adds a top copper layer to the design and returns it.
func (g *Gerber) TopCopper() *Layer { return g.addLayer(".gtl") }

// TopSolderMask adds a top solder mask layer to the design and returns it.
func (g *Gerber) TopSolderMask() *Layer { return g.addLayer(".gts") }

// TopSilkscreen adds a top silkscreen (legend) layer and returns it.
func (g *Gerber) TopSilkscreen() *Layer { return g.addLayer(".gto") }

// BottomCopper adds a bottom copper layer to the design and returns it.
func (g *Gerber) BottomCopper() *Layer { return g.addLayer(".gbl") }

// BottomSolderMask adds a bottom solder mask layer to the design and returns it.
func (g *Gerber) BottomSolderMask() *Layer { return g.addLayer(".gbs") }

// BottomSilkscreen adds a bottom silkscreen (legend) layer and returns it.
func (g *Gerber) BottomSilkscreen() *Layer { return g.addLayer(".gbo") }

// Drill adds a drill layer to the design and returns it.
func (g *Gerber) Drill() *Layer { return g.addLayer(".xln") }

// Outline adds a board outline layer to the design and returns it.
func (g *Gerber) Outline() *Layer { return g.addLayer(".gko") }

// FabricationInstructions adds a fabrication-notes layer and returns it.
func (g *Gerber) FabricationInstructions() *Layer { return g.addLayer(".fab") }
