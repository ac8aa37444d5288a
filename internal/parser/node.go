package parser

// Node is one value in a parsed document tree. The set of shapes is closed:
// a Node is a Scalar, a List, or a Map, and consumers are expected to
// pattern-match on all three.
type Node interface {
	node()
}

// Scalar is a bare word or quoted string. Numbers and dates are kept as raw
// strings at this layer; interpretation belongs to the consumer, so a
// malformed numeric field only fails the query that needs it.
type Scalar struct {
	Value  string
	Quoted bool
	Offset int
}

// List is an ordered sequence of values. A block that mixes keyless entries
// with key=value entries classifies as a List; the keyed entries are kept in
// place as single-pair Maps so nothing is dropped or reordered.
type List struct {
	Items []Node
}

// Pair is one key=value entry of a Map.
type Pair struct {
	Key   string
	Value Node
}

// Map is an ordered sequence of pairs. Repeated keys are legitimate in the
// save format (e.g. several core= entries per province) and are never
// collapsed.
type Map struct {
	Pairs []Pair
}

func (Scalar) node() {}
func (List) node()   {}
func (Map) node()    {}

// Get returns every value stored under key, in document order.
func (m Map) Get(key string) []Node {
	var out []Node
	for _, p := range m.Pairs {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// First returns the first value stored under key.
func (m Map) First(key string) (Node, bool) {
	for _, p := range m.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// FirstScalar returns the first scalar value stored under key.
func (m Map) FirstScalar(key string) (string, bool) {
	n, ok := m.First(key)
	if !ok {
		return "", false
	}
	s, ok := n.(Scalar)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// FirstMap returns the first Map value stored under key.
func (m Map) FirstMap(key string) (Map, bool) {
	n, ok := m.First(key)
	if !ok {
		return Map{}, false
	}
	sub, ok := n.(Map)
	return sub, ok
}

// FirstList returns the first List value stored under key.
func (m Map) FirstList(key string) (List, bool) {
	n, ok := m.First(key)
	if !ok {
		return List{}, false
	}
	l, ok := n.(List)
	return l, ok
}

// Scalars returns the scalar items of the list, skipping nested blocks.
func (l List) Scalars() []string {
	var out []string
	for _, it := range l.Items {
		if s, ok := it.(Scalar); ok {
			out = append(out, s.Value)
		}
	}
	return out
}
