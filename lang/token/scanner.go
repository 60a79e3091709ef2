package token

import (
	"strconv"
	"strings"
)

// Scanner turns panel source text into a stream of Tokens. Comments
// (`# ... \n`) and whitespace are skipped transparently, except that
// the parser must suppress comment-skipping itself while lexing inside
// a `wrap(...) with { ... }` header — see Scanner.InWrapHeader, which
// preserves the documented limitation from spec.md §4.1.
type Scanner struct {
	src  []byte
	pos  int
	line int
	col  int

	// InWrapHeader disables comment recognition, matching the known
	// limitation that `# ...` is not treated as a comment inside a
	// wrap(...) placement list.
	InWrapHeader bool
}

// NewScanner returns a Scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: []byte(src), line: 1, col: 1}
}

// Src returns the full source text the Scanner was constructed with.
func (s *Scanner) Src() string { return string(s.src) }

// BytePos returns the current byte offset into Src().
func (s *Scanner) BytePos() int { return s.pos }

// AdvanceTo moves the Scanner's cursor forward to byte offset newPos,
// keeping line/col tracking consistent. Used by the parser to skip
// over a `!{ ... }` numeric expression body, whose contents are not
// tokenized as panel-language tokens.
func (s *Scanner) AdvanceTo(newPos int) {
	for s.pos < newPos && s.pos < len(s.src) {
		s.advance()
	}
}

func (s *Scanner) peekByte() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *Scanner) position() Position {
	return Position{Line: s.line, Col: s.col}
}

func (s *Scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		c := s.peekByte()
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			s.advance()
			continue
		}
		if c == '#' && !s.InWrapHeader {
			for s.pos < len(s.src) && s.peekByte() != '\n' {
				s.advance()
			}
			continue
		}
		break
	}
}

// Next returns the next Token in the stream, terminating with an
// endless sequence of EOF tokens.
func (s *Scanner) Next() Token {
	s.skipSpaceAndComments()
	pos := s.position()
	if s.pos >= len(s.src) {
		return Token{Kind: EOF, Pos: pos}
	}
	c := s.peekByte()
	switch {
	case c == '{':
		s.advance()
		return Token{Kind: LBRACE, Text: "{", Pos: pos}
	case c == '}':
		s.advance()
		return Token{Kind: RBRACE, Text: "}", Pos: pos}
	case c == '(':
		s.advance()
		return Token{Kind: LPAREN, Text: "(", Pos: pos}
	case c == ')':
		s.advance()
		return Token{Kind: RPAREN, Text: ")", Pos: pos}
	case c == '[':
		s.advance()
		return Token{Kind: LBRACKET, Text: "[", Pos: pos}
	case c == ']':
		s.advance()
		return Token{Kind: RBRACKET, Text: "]", Pos: pos}
	case c == '<':
		s.advance()
		return Token{Kind: LANGLE, Text: "<", Pos: pos}
	case c == '>':
		s.advance()
		return Token{Kind: RANGLE, Text: ">", Pos: pos}
	case c == ';':
		s.advance()
		return Token{Kind: SEMI, Text: ";", Pos: pos}
	case c == ',':
		s.advance()
		return Token{Kind: COMMA, Text: ",", Pos: pos}
	case c == '$':
		s.advance()
		return Token{Kind: DOLLAR, Text: "$", Pos: pos}
	case c == '!':
		s.advance()
		return Token{Kind: BANG, Text: "!", Pos: pos}
	case c == '@':
		s.advance()
		return Token{Kind: AT, Text: "@", Pos: pos}
	case c == '=':
		s.advance()
		if s.peekByte() == '>' {
			s.advance()
			return Token{Kind: ARROW, Text: "=>", Pos: pos}
		}
		return Token{Kind: EQUAL, Text: "=", Pos: pos}
	case c == '+':
		s.advance()
		return Token{Kind: PLUS, Text: "+", Pos: pos}
	case c == '-':
		return s.scanMinusOrNumber(pos)
	case c == '"':
		return s.scanString(pos)
	case isDigit(c):
		return s.scanNumber(pos)
	case isIdentStart(c):
		return s.scanIdent(pos)
	default:
		s.advance()
		return Token{Kind: ERROR, Text: string(c), Pos: pos}
	}
}

func (s *Scanner) scanMinusOrNumber(pos Position) Token {
	// A leading '-' starts a negative NUMBER literal when immediately
	// followed by a digit or '.'; otherwise it is the MINUS operator
	// (used in placement offsets like `left - 2 =>`).
	start := s.pos
	s.advance() // consume '-'
	if isDigit(s.peekByte()) || s.peekByte() == '.' {
		for s.pos < len(s.src) && (isDigit(s.peekByte()) || s.peekByte() == '.') {
			s.advance()
		}
		text := string(s.src[start:s.pos])
		return Token{Kind: NUMBER, Text: text, Num: parseFloat(text), Pos: pos}
	}
	return Token{Kind: MINUS, Text: "-", Pos: pos}
}

func (s *Scanner) scanNumber(pos Position) Token {
	start := s.pos
	for s.pos < len(s.src) && (isDigit(s.peekByte()) || s.peekByte() == '.') {
		s.advance()
	}
	text := string(s.src[start:s.pos])
	return Token{Kind: NUMBER, Text: text, Num: parseFloat(text), Pos: pos}
}

func (s *Scanner) scanString(pos Position) Token {
	s.advance() // opening quote
	var sb strings.Builder
	for s.pos < len(s.src) && s.peekByte() != '"' {
		sb.WriteByte(s.advance())
	}
	if s.pos < len(s.src) {
		s.advance() // closing quote
	}
	return Token{Kind: STRING, Text: sb.String(), Pos: pos}
}

func (s *Scanner) scanIdent(pos Position) Token {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.peekByte()) {
		s.advance()
	}
	text := string(s.src[start:s.pos])
	// "v-score" is the one hyphenated keyword in the grammar.
	if text == "v" && s.peekByte() == '-' && s.hasLiteralAhead("-score") {
		for i := 0; i < len("-score"); i++ {
			s.advance()
		}
		return Token{Kind: VSCORE, Text: "v-score", Pos: pos}
	}
	return Token{Kind: Lookup(text), Text: text, Pos: pos}
}

func (s *Scanner) hasLiteralAhead(lit string) bool {
	if s.pos+len(lit) > len(s.src) {
		return false
	}
	return string(s.src[s.pos:s.pos+len(lit)]) == lit
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
