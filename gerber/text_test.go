package gerber

import (
	"testing"

	_ "github.com/gmlewis/go-fonts/fonts/freeserif"
)

func TestTextT_Primitive(t *testing.T) {
	var p Primitive = &TextT{}
	if p == nil {
		// In actuality, this test won't compile if it isn't a Primitive.
		t.Errorf("TextT does not implement the Primitive interface")
	}
}

func TestText_EmptyStringDoesNotPanic(t *testing.T) {
	g := New("textbug")
	g.TopSilkscreen().Add(Text(25, 25, 1.0, "", "freeserif", 12))
	g.MBB() // should not panic
}

func TestTextMBBGrowsWithXScale(t *testing.T) {
	narrow := Text(0, 0, 1.0, "hello", "freeserif", 12).MBB()
	wide := Text(0, 0, 2.0, "hello", "freeserif", 12).MBB()
	if got, want := wide.Max.X-wide.Min.X, narrow.Max.X-narrow.Min.X; got <= want {
		t.Errorf("doubling xScale should widen the MBB: got %v, want > %v", got, want)
	}
}

func TestTextMBBMultilineIsTaller(t *testing.T) {
	single := Text(0, 0, 1.0, "hello", "freeserif", 12).MBB()
	multi := Text(0, 0, 1.0, "hello\nworld", "freeserif", 12).MBB()
	if got, want := multi.Max.Y-multi.Min.Y, single.Max.Y-single.Min.Y; got <= want {
		t.Errorf("a second line should grow the MBB height: got %v, want > %v", got, want)
	}
}
