package parser

import "io"

// Savegames open with a bare magic word before the first entry.
const saveMagic = "EU4txt"

type treeParser struct {
	tz  *Tokenizer
	cur Token
}

// Parse consumes one whole document and returns its top-level Map. The
// document root must consist of key=value entries; anything else is a
// structural error. An optional leading save magic word is skipped.
func Parse(r io.Reader) (Map, error) {
	tz, err := NewTokenizer(r)
	if err != nil {
		return Map{}, err
	}

	p := &treeParser{tz: tz}
	if err := p.advance(); err != nil {
		return Map{}, err
	}
	if p.cur.Kind == TokenWord && p.cur.Text == saveMagic {
		if err := p.advance(); err != nil {
			return Map{}, err
		}
	}

	root, err := p.parseEntries(true)
	if err != nil {
		return Map{}, err
	}
	m, ok := root.(Map)
	if !ok {
		return Map{}, &StructuralError{Offset: 0, Msg: "document root must contain only key=value entries"}
	}
	return m, nil
}

func (p *treeParser) advance() error {
	tok, err := p.tz.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

type entry struct {
	keyed bool
	key   string
	value Node
}

// parseEntries reads entries until the closing brace (or EOF at the top
// level) and classifies the block: at least one keyless entry makes it a
// List, otherwise it is a Map. An empty block is an empty Map.
func (p *treeParser) parseEntries(topLevel bool) (Node, error) {
	var entries []entry

	for {
		switch p.cur.Kind {
		case TokenEOF:
			if !topLevel {
				return nil, &StructuralError{Offset: p.cur.Offset, Msg: "unterminated block"}
			}
			return classify(entries), nil

		case TokenClose:
			if topLevel {
				return nil, &StructuralError{Offset: p.cur.Offset, Msg: "'}' with no matching '{'"}
			}
			return classify(entries), nil

		case TokenEquals:
			return nil, &StructuralError{Offset: p.cur.Offset, Msg: "'=' with no key"}

		case TokenOpen:
			// Keyless nested block.
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseEntries(false)
			if err != nil {
				return nil, err
			}
			if err := p.expectClose(); err != nil {
				return nil, err
			}
			entries = append(entries, entry{value: inner})

		default:
			word := Scalar{Value: p.cur.Text, Quoted: p.cur.Kind == TokenString, Offset: p.cur.Offset}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind != TokenEquals {
				entries = append(entries, entry{value: word})
				continue
			}
			eq := p.cur.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			value, err := p.parseValue(eq)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{keyed: true, key: word.Value, value: value})
		}
	}
}

func (p *treeParser) parseValue(eqOffset int) (Node, error) {
	switch p.cur.Kind {
	case TokenWord, TokenString:
		s := Scalar{Value: p.cur.Text, Quoted: p.cur.Kind == TokenString, Offset: p.cur.Offset}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return s, nil

	case TokenOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseEntries(false)
		if err != nil {
			return nil, err
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, &StructuralError{Offset: eqOffset, Msg: "missing value after '='"}
	}
}

func (p *treeParser) expectClose() error {
	if p.cur.Kind != TokenClose {
		return &StructuralError{Offset: p.cur.Offset, Msg: "unterminated block"}
	}
	return p.advance()
}

func classify(entries []entry) Node {
	keyless := false
	for _, e := range entries {
		if !e.keyed {
			keyless = true
			break
		}
	}

	if !keyless {
		m := Map{}
		for _, e := range entries {
			m.Pairs = append(m.Pairs, Pair{Key: e.key, Value: e.value})
		}
		return m
	}

	l := List{}
	for _, e := range entries {
		if e.keyed {
			l.Items = append(l.Items, Map{Pairs: []Pair{{Key: e.key, Value: e.value}}})
		} else {
			l.Items = append(l.Items, e.value)
		}
	}
	return l
}
