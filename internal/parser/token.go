package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenOpen   TokenKind = iota // {
	TokenClose                   // }
	TokenEquals                  // =
	TokenWord                    // bare word; numbers and dates stay words
	TokenString                  // double-quoted string, quotes stripped
	TokenEOF
)

// Token is one lexical unit of a savegame or definition document.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// StructuralError reports malformed brace or quote nesting. It is fatal:
// the whole load aborts and the error carries the byte offset of the
// offending input.
type StructuralError struct {
	Offset int
	Msg    string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Msg)
}

// Tokenizer is a single forward pass over one document. Savegames and the
// static definition tables are written in a single-byte legacy encoding;
// the lexer works on the raw bytes, so every Offset is a byte offset into
// the input file, and only token text is decoded from Latin-1.
type Tokenizer struct {
	data []byte
	pos  int
}

// NewTokenizer reads the whole input. The tokenizer is not restartable;
// callers consume it once via Next.
func NewTokenizer(r io.Reader) (*Tokenizer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{data: raw}, nil
}

// Next returns the next token, or a TokenEOF token once the input is
// exhausted. An unterminated quoted string is a StructuralError.
func (t *Tokenizer) Next() (Token, error) {
	t.skipInsignificant()
	if t.pos >= len(t.data) {
		return Token{Kind: TokenEOF, Offset: t.pos}, nil
	}

	start := t.pos
	switch t.data[t.pos] {
	case '{':
		t.pos++
		return Token{Kind: TokenOpen, Text: "{", Offset: start}, nil
	case '}':
		t.pos++
		return Token{Kind: TokenClose, Text: "}", Offset: start}, nil
	case '=':
		t.pos++
		return Token{Kind: TokenEquals, Text: "=", Offset: start}, nil
	case '"':
		t.pos++
		for t.pos < len(t.data) && t.data[t.pos] != '"' {
			t.pos++
		}
		if t.pos >= len(t.data) {
			return Token{}, &StructuralError{Offset: start, Msg: "unterminated quoted string"}
		}
		text := decodeLatin1(t.data[start+1 : t.pos])
		t.pos++
		return Token{Kind: TokenString, Text: text, Offset: start}, nil
	default:
		for t.pos < len(t.data) && !isSpecial(t.data[t.pos]) {
			t.pos++
		}
		return Token{Kind: TokenWord, Text: decodeLatin1(t.data[start:t.pos]), Offset: start}, nil
	}
}

// decodeLatin1 maps raw token bytes to their Latin-1 runes. ASCII text
// passes through unchanged.
func decodeLatin1(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return sb.String()
}

func (t *Tokenizer) skipInsignificant() {
	for t.pos < len(t.data) {
		switch c := t.data[t.pos]; {
		case c == '#':
			for t.pos < len(t.data) && t.data[t.pos] != '\n' {
				t.pos++
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			t.pos++
		default:
			return
		}
	}
}

func isSpecial(c byte) bool {
	switch c {
	case '{', '}', '=', '"', '#', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
