package token

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func kinds(src string) []Kind {
	sc := NewScanner(src)
	var out []Kind
	for {
		tok := sc.Next()
		out = append(out, tok.Kind)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestScannerPunctuation(t *testing.T) {
	got := kinds("R<5>(h)")
	want := []Kind{IDENT, LANGLE, NUMBER, RANGLE, LPAREN, IDENT, RPAREN, EOF}
	assert.EqualValues(t, got, want)
}

func TestScannerArrow(t *testing.T) {
	got := kinds("top => C<10>")
	want := []Kind{TOP, ARROW, IDENT, LANGLE, NUMBER, RANGLE, EOF}
	assert.EqualValues(t, got, want)
}

func TestScannerNegativeNumber(t *testing.T) {
	got := kinds("-2.5")
	want := []Kind{NUMBER, EOF}
	assert.EqualValues(t, got, want)

	sc := NewScanner("-2.5")
	tok := sc.Next()
	assert.Equals(t, tok.Num, -2.5)
}

func TestScannerMinusOperator(t *testing.T) {
	got := kinds("left - 2 => C<5>")
	want := []Kind{LEFT, MINUS, NUMBER, ARROW, IDENT, LANGLE, NUMBER, RANGLE, EOF}
	assert.EqualValues(t, got, want)
}

func TestScannerVScore(t *testing.T) {
	got := kinds("[3; v-score]")
	want := []Kind{LBRACKET, NUMBER, SEMI, VSCORE, RBRACKET, EOF}
	assert.EqualValues(t, got, want)
}

func TestScannerComment(t *testing.T) {
	got := kinds("R<5>() # a comment\nC<3>()")
	want := []Kind{IDENT, LANGLE, NUMBER, RANGLE, LPAREN, RPAREN, IDENT, LANGLE, NUMBER, RANGLE, LPAREN, RPAREN, EOF}
	assert.EqualValues(t, got, want)
}

func TestScannerCommentSuppressedInWrapHeader(t *testing.T) {
	sc := NewScanner("left => C<5> # not a comment here\n")
	sc.InWrapHeader = true
	tok := sc.Next()
	assert.Equals(t, tok.Kind, LEFT)
}
