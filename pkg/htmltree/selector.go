package htmltree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is returned by Compile for values that are neither a
// selector string, a predicate nor a parsed sequence.
var ErrInvalidQuery = errors.New("invalid query")

// Selector is one term of a query. Exactly one of Predicate, Wildcard or the
// structural fields is meaningful. A structural selector without any field
// never matches.
type Selector struct {
	Tag   string
	Class string
	ID    string
	Attr  string

	// Value is compared with the Attr attribute when HasValue is set,
	// otherwise only the presence of Attr is tested.
	Value    string
	HasValue bool

	Wildcard  bool
	Predicate func(*Node) bool
}

// Sequence is a parsed query: selector terms joined by descendant
// combinators, outermost first. Sequences are immutable and may be reused.
type Sequence []Selector

// PredicateSelector wraps fn as a selector term.
func PredicateSelector(fn func(*Node) bool) Selector {
	return Selector{Predicate: fn}
}

// IsEmpty reports whether the selector can never match.
func (s Selector) IsEmpty() bool {
	return !s.Wildcard && s.Predicate == nil &&
		s.Tag == "" && s.Class == "" && s.ID == "" && s.Attr == ""
}

// Match tests a node against the selector.
func (s Selector) Match(n *Node) bool {
	if n == nil {
		return false
	}
	if s.Predicate != nil {
		return s.Predicate(n)
	}
	if s.Wildcard {
		return true
	}
	if s.IsEmpty() {
		return false
	}

	if s.Tag != "" && n.Tag() != s.Tag {
		return false
	}
	if s.Class != "" && !n.HasClass(s.Class) {
		return false
	}
	if s.ID != "" && (!n.HasAttribute("id") || n.ID() != s.ID) {
		return false
	}
	if s.Attr != "" && !n.HasAttribute(s.Attr) {
		return false
	}
	if s.Attr != "" && s.HasValue {
		v, _ := n.AttributeValue(s.Attr)
		if scalar, ok := v.(Scalar); ok {
			return looseEqual(n.resolve(scalar.V), s.Value)
		}
		return looseEqual(v.Text(), s.Value)
	}
	return true
}

// String returns the selector in query syntax. Predicates print as "<func>".
func (s Selector) String() string {
	switch {
	case s.Predicate != nil:
		return "<func>"
	case s.Wildcard:
		return "*"
	}

	var b strings.Builder
	b.WriteString(s.Tag)
	if s.Class != "" {
		b.WriteString("." + s.Class)
	}
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	if s.Attr != "" {
		b.WriteString("[" + s.Attr)
		if s.HasValue {
			b.WriteString(`="`)
			b.WriteString(strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s.Value))
			b.WriteString(`"`)
		}
		b.WriteString("]")
	}
	return b.String()
}

// ParseSelector parses a single term:
//
//	tag? ("." class)? ("#" id)? ("[" attr ("=" value)? "]")?
//
// Names are made of letters, digits, '_', ':' and '-'. A value is either
// quoted with ' or " or runs up to the closing bracket; a backslash escapes
// the next character. "*" is the wildcard. On failure the returned selector
// is empty and ok is false.
func ParseSelector(term string) (sel Selector, ok bool) {
	if term == "*" {
		return Selector{Wildcard: true}, true
	}

	p := &termParser{src: term}
	sel.Tag = p.name()

	if p.accept('.') {
		if sel.Class = p.name(); sel.Class == "" {
			return Selector{}, false
		}
	}
	if p.accept('#') {
		if sel.ID = p.name(); sel.ID == "" {
			return Selector{}, false
		}
	}
	if p.accept('[') {
		if sel.Attr = p.name(); sel.Attr == "" {
			return Selector{}, false
		}
		if p.accept('=') {
			value, ok := p.value()
			if !ok {
				return Selector{}, false
			}
			sel.Value, sel.HasValue = value, true
		}
		if !p.accept(']') {
			return Selector{}, false
		}
	}

	if !p.done() || sel.IsEmpty() {
		return Selector{}, false
	}
	return sel, true
}

// ParseSequence splits query on whitespace and parses every term. Terms that
// fail to parse are kept as empty selectors, so the query matches nothing
// instead of failing.
func ParseSequence(query string) Sequence {
	terms := strings.Fields(query)
	seq := make(Sequence, 0, len(terms))
	for _, term := range terms {
		sel, _ := ParseSelector(term)
		seq = append(seq, sel)
	}
	return seq
}

// SequenceFunc makes a one-term sequence from a predicate.
func SequenceFunc(fn func(*Node) bool) Sequence {
	return Sequence{PredicateSelector(fn)}
}

// Compile turns a dynamically typed query into a sequence. It accepts a
// string, a func(*Node) bool, a Selector, a Sequence or a []Selector.
func Compile(query any) (Sequence, error) {
	switch q := query.(type) {
	case string:
		return ParseSequence(q), nil
	case func(*Node) bool:
		if q == nil {
			return nil, fmt.Errorf("nil predicate: %w", ErrInvalidQuery)
		}
		return SequenceFunc(q), nil
	case Selector:
		return Sequence{q}, nil
	case Sequence:
		return q, nil
	case []Selector:
		return Sequence(q), nil
	default:
		return nil, fmt.Errorf("unsupported query type %T: %w", query, ErrInvalidQuery)
	}
}

// MustCompile is like Compile but panics on error.
func MustCompile(query any) Sequence {
	seq, err := Compile(query)
	if err != nil {
		panic("htmltree: " + err.Error())
	}
	return seq
}

// Valid reports whether every term can match something.
func (q Sequence) Valid() bool {
	for _, sel := range q {
		if sel.IsEmpty() {
			return false
		}
	}
	return len(q) > 0
}

func (q Sequence) String() string {
	terms := make([]string, len(q))
	for i, sel := range q {
		terms[i] = sel.String()
	}
	return strings.Join(terms, " ")
}

type termParser struct {
	src string
	pos int
}

func (p *termParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *termParser) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *termParser) name() string {
	start := p.pos
	for p.pos < len(p.src) && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == ':' || c == '-'
}

// value reads a quoted or bare attribute value. A bare value stops before
// the closing bracket; a quoted one must be closed.
func (p *termParser) value() (string, bool) {
	var quote byte
	if p.pos < len(p.src) && (p.src[p.pos] == '"' || p.src[p.pos] == '\'') {
		quote = p.src[p.pos]
		p.pos++
	}

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
			continue
		}
		if quote != 0 && c == quote {
			p.pos++
			return b.String(), true
		}
		if quote == 0 && c == ']' {
			return b.String(), true
		}
		b.WriteByte(c)
		p.pos++
	}

	// unterminated quote, or no closing bracket
	return "", false
}
