// Package viewer views a combined panel design using Fyne.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"regexp"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"
	"github.com/twitchyliquid64/maker-panel/gerber"
)

var layerRE = regexp.MustCompile(`\.g(\d+)l$`)

type viewController struct {
	g         *gerber.Gerber
	mbb       gerber.MBB
	center    gerber.Pt
	lastW     int
	lastH     int
	scale     float64
	drawLayer []bool
	app       fyne.App
	canvasObj fyne.CanvasObject
	img       *image.RGBA

	// These control the panning within the drawing area.
	xOffset int
	yOffset int

	indexDrill            int
	indexTopSilkscreen    int
	indexTopSolderMask    int
	indexTop              int
	indexLayerN           map[int]int
	indexBottom           int
	indexBottomSilkscreen int
	indexBottomSolderMask int
	indexOutline          int
	indexFab              int

	maxN int

	// mu protects Refresh from being hit multiple times concurrently.
	mu sync.Mutex
}

func initController(g *gerber.Gerber, a fyne.App, allLayersOn bool) *viewController {
	mbb := g.MBB()
	vc := &viewController{
		g:                     g,
		app:                   a,
		mbb:                   mbb,
		center:                gerber.Pt{X: 0.5 * (mbb.Max.X + mbb.Min.X), Y: 0.5 * (mbb.Max.Y + mbb.Min.Y)},
		drawLayer:             make([]bool, len(g.Layers)),
		indexDrill:            -1,
		indexTopSilkscreen:    -1,
		indexTopSolderMask:    -1,
		indexTop:              -1,
		indexLayerN:           map[int]int{},
		indexBottom:           -1,
		indexBottomSilkscreen: -1,
		indexBottomSolderMask: -1,
		indexOutline:          -1,
		indexFab:              -1,
	}

	for i, layer := range g.Layers {
		if m := layerRE.FindStringSubmatch(layer.Filename); len(m) == 2 {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 2 {
				log.Fatalf("error parsing layer suffix %v", layer.Filename)
			}
			vc.indexLayerN[n] = i
			if n > vc.maxN {
				vc.maxN = n
			}
			vc.drawLayer[i] = allLayersOn
			continue
		}

		vc.drawLayer[i] = true
		switch layer.Filename[len(layer.Filename)-4:] {
		case ".gtl":
			vc.indexTop = i
		case ".gts":
			vc.indexTopSolderMask = i
		case ".gto":
			vc.indexTopSilkscreen = i
		case ".gbl":
			vc.indexBottom = i
		case ".gbs":
			vc.indexBottomSolderMask = i
		case ".gbo":
			vc.indexBottomSilkscreen = i
		case ".xln":
			vc.indexDrill = i
		case ".gko":
			vc.indexOutline = i
		case ".fab":
			vc.indexFab = i
		default:
			log.Fatalf("Unknown Gerber layer: %v", layer.Filename)
		}
	}

	return vc
}

// Show opens an interactive window browsing g, toggling individual
// layers on and off.
func Show(g *gerber.Gerber, allLayersOn bool) {
	a := app.New()

	vc := initController(g, a, allLayersOn)
	vc.scaleToFit(800, 800)
	vc.img = image.NewRGBA(image.Rect(0, 0, 800, 800))
	c := canvas.NewRaster(vc.imageFunc)
	c.SetMinSize(fyne.Size{Width: 800, Height: 800})
	vc.canvasObj = c

	var checks []fyne.CanvasObject
	addCheck := func(index int, label string) {
		if index >= 0 {
			check := widget.NewCheck(label, func(v bool) {
				vc.drawLayer[index] = v
				vc.Refresh()
				canvas.Refresh(vc.canvasObj)
			})
			check.SetChecked(vc.drawLayer[index])
			checks = append(checks, container.NewHBox(check, layout.NewSpacer()))
		}
	}
	addCheck(vc.indexDrill, "Drill")
	addCheck(vc.indexTopSilkscreen, "Top Silkscreen")
	addCheck(vc.indexTopSolderMask, "Top Solder Mask")
	addCheck(vc.indexTop, "Top")
	for i := 2; i <= vc.maxN; i++ {
		addCheck(vc.indexLayerN[i], fmt.Sprintf("Layer %v", i))
	}
	addCheck(vc.indexBottom, "Bottom")
	addCheck(vc.indexBottomSolderMask, "Bottom Solder Mask")
	addCheck(vc.indexBottomSilkscreen, "Bottom Silkscreen")
	addCheck(vc.indexOutline, "Outline")
	addCheck(vc.indexFab, "Fabrication Instructions")
	scroller := container.NewScroll(container.NewVBox(checks...))

	quit := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Quit", func() { a.Quit() }),
	)

	w := a.NewWindow("Panel viewer")
	w.Canvas().SetOnTypedRune(vc.OnTypedRune)
	w.Canvas().SetOnTypedKey(vc.OnTypedKey)
	w.SetContent(container.NewBorder(nil, quit, nil, scroller, c))

	w.ShowAndRun()
}

func (vc *viewController) OnTypedRune(key rune) {
	switch key {
	case 'q', 'Q':
		vc.app.Quit()
	case '-', '_':
		vc.zoom(-0.25)
	case '+', '=':
		vc.zoom(0.25)
	case 'f', 'F':
		vc.xOffset, vc.yOffset = 0, 0
		vc.scaleToFit(vc.lastW, vc.lastH)
		vc.Refresh()
		canvas.Refresh(vc.canvasObj)
	default:
		log.Printf("Unhandled rune=%+q", key)
	}
}

func (vc *viewController) OnTypedKey(event *fyne.KeyEvent) {
	if event == nil {
		return
	}
	h, w := int(vc.canvasObj.Size().Height), int(vc.canvasObj.Size().Width)
	switch event.Name {
	case "Up":
		vc.pan(0, -h/5)
	case "Down":
		vc.pan(0, h/5)
	case "Left":
		vc.pan(w/5, 0)
	case "Right":
		vc.pan(-w/5, 0)
	default:
		log.Printf("Unhandled event=%#v", *event)
	}
}

func (vc *viewController) zoom(amount float64) {
	vc.scale = math.Exp2(amount) * vc.scale
	vc.Refresh()
	canvas.Refresh(vc.canvasObj)
}

func (vc *viewController) pan(dx, dy int) {
	vc.xOffset += dx
	vc.yOffset += dy
	vc.Refresh()
	canvas.Refresh(vc.canvasObj)
}

func (vc *viewController) scaleToFit(w, h int) {
	vc.lastW, vc.lastH = w, h
	vc.scale = float64(w-1) / (vc.mbb.Max.X - vc.mbb.Min.X)
	if s := float64(h-1) / (vc.mbb.Max.Y - vc.mbb.Min.Y); s < vc.scale {
		vc.scale = s
	}
}

func (vc *viewController) Resize(w, h int) {
	if vc.lastW != w || vc.lastH != h {
		vc.lastW, vc.lastH = w, h
		vc.img = image.NewRGBA(image.Rect(0, 0, w, h))
		vc.Refresh()
	}
}

func (vc *viewController) viewMBB() *gerber.MBB {
	xOffset, yOffset := float64(-vc.xOffset)/vc.scale, float64(-vc.yOffset)/vc.scale
	halfWidth, halfHeight := 0.5*float64(vc.lastW-1)/vc.scale, 0.5*float64(vc.lastH-1)/vc.scale
	return &gerber.MBB{
		Min: gerber.Pt{X: vc.center.X + xOffset - halfWidth, Y: vc.center.Y + yOffset - halfHeight},
		Max: gerber.Pt{X: vc.center.X + xOffset + halfWidth, Y: vc.center.Y + yOffset + halfHeight},
	}
}

func (vc *viewController) xf(bbox *gerber.MBB) func(x float64) float64 {
	return func(x float64) float64 { return vc.scale * (x - bbox.Min.X) }
}

func (vc *viewController) yf(bbox *gerber.MBB) func(y float64) float64 {
	return func(y float64) float64 { return vc.scale * (bbox.Max.Y - y) }
}

func (vc *viewController) Refresh() {
	const cs = 1.0 / float64(0xffff)
	bbox := vc.viewMBB()
	xf := vc.xf(bbox)
	yf := vc.yf(bbox)

	dc := gg.NewContextForImage(vc.img)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	renderLayer := func(index int, col color.Color) {
		if index < 0 || !vc.drawLayer[index] {
			return
		}
		r, g, b, a := col.RGBA()
		fr, fg, fb, fa := float64(r)*cs, float64(g)*cs, float64(b)*cs, float64(a)*cs
		dc.SetRGBA(fr, fg, fb, fa)
		layer := vc.g.Layers[index]
		for _, p := range layer.Primitives {
			mbb := p.MBB()
			if !bbox.Intersects(&mbb) {
				continue
			}
			switch v := p.(type) {
			case *gerber.ArcT:
				dc.SetLineWidth(v.Thickness * vc.scale)
				sweep := v.EndAngle - v.StartAngle
				length := math.Abs(sweep) / 360 * 2 * math.Pi * v.Radius
				segments := int(0.5+length*10.0) + 1
				delta := sweep / float64(segments)
				angle := v.StartAngle
				for i := 0; i < segments; i++ {
					rad := angle * math.Pi / 180
					x1 := v.Center.X + v.XScale*math.Cos(rad)*v.Radius
					y1 := v.Center.Y + v.YScale*math.Sin(rad)*v.Radius
					angle += delta
					rad = angle * math.Pi / 180
					x2 := v.Center.X + v.XScale*math.Cos(rad)*v.Radius
					y2 := v.Center.Y + v.YScale*math.Sin(rad)*v.Radius
					dc.DrawLine(xf(x1), yf(y1), xf(x2), yf(y2))
				}
				dc.Stroke()
			case *gerber.CircleT:
				dc.DrawCircle(xf(v.Center.X), yf(v.Center.Y), 0.5*v.Diameter*vc.scale)
				dc.Fill()
			case *gerber.LineT:
				dc.SetLineWidth(v.Thickness * vc.scale)
				dc.DrawLine(xf(v.P1.X), yf(v.P1.Y), xf(v.P2.X), yf(v.P2.Y))
				dc.Stroke()
			case *gerber.TextT:
				// Approximate: fill the text's bounding box rather than
				// rasterizing individual glyphs.
				dc.DrawRectangle(xf(mbb.Min.X), yf(mbb.Max.Y), (mbb.Max.X-mbb.Min.X)*vc.scale, (mbb.Max.Y-mbb.Min.Y)*vc.scale)
				dc.Fill()
			case *gerber.PolygonT:
				for i, p := range v.Points {
					pt := gerber.Pt{X: p.X + v.Offset.X, Y: p.Y + v.Offset.Y}
					if i == 0 {
						dc.MoveTo(xf(pt.X), yf(pt.Y))
					} else {
						dc.LineTo(xf(pt.X), yf(pt.Y))
					}
				}
				dc.Fill()
			default:
				log.Printf("%T not yet supported", v)
			}
		}
	}
	// Draw layers from bottom up.
	renderLayer(vc.indexOutline, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	renderLayer(vc.indexBottomSilkscreen, color.RGBA{R: 250, G: 50, B: 250, A: 255})
	renderLayer(vc.indexBottomSolderMask, color.RGBA{R: 250, G: 50, B: 50, A: 255})
	renderLayer(vc.indexBottom, color.RGBA{R: 50, G: 50, B: 250, A: 255})
	for i := vc.maxN; i >= 2; i-- {
		renderLayer(vc.indexLayerN[i], colors[(i-2)%len(colors)])
	}
	renderLayer(vc.indexTop, color.RGBA{R: 250, G: 50, B: 250, A: 255})
	renderLayer(vc.indexTopSolderMask, color.RGBA{R: 0, G: 150, B: 200, A: 255})
	renderLayer(vc.indexTopSilkscreen, color.RGBA{R: 250, G: 150, B: 0, A: 255})
	renderLayer(vc.indexDrill, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	renderLayer(vc.indexFab, color.RGBA{R: 255, G: 255, B: 0, A: 255})
	vc.img = dc.Image().(*image.RGBA)
}

func (vc *viewController) imageFunc(w, h int) image.Image {
	if vc.lastW != w || vc.lastH != h {
		vc.mu.Lock()
		vc.Resize(w, h)
		vc.mu.Unlock()
	}
	return vc.img
}

var colors = []color.Color{
	color.RGBA{R: 0, G: 0, B: 0x84, A: 255},
	color.RGBA{R: 0x84, G: 0, B: 0, A: 255},
	color.RGBA{R: 0xc2, G: 0xb8, B: 0x33, A: 255},
	color.RGBA{R: 0, G: 0x48, B: 0, A: 255},
	color.RGBA{R: 0x84, G: 0, B: 0x84, A: 255},
	color.RGBA{R: 0xc2, G: 0xc2, B: 0xc2, A: 255},
	color.RGBA{R: 0, G: 0x84, B: 0, A: 255},
	color.RGBA{R: 0x84, G: 0, B: 0x84, A: 255},
	color.RGBA{R: 0, G: 0x84, B: 0x84, A: 255},
	color.RGBA{R: 0x84, G: 0x84, B: 0, A: 255},
}
