package htmltree

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strings"

	"htmltree/internal/css"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is an attribute value. It is one of Scalar, *ClassList or *StyleMap;
// rendering switches on the variant.
type Value interface {
	// Text returns the attribute text before escaping.
	Text() string
	isValue()
}

// Scalar holds a plain attribute value: string, bool, number, or for hidden
// attributes anything else (for example the _if guard function).
type Scalar struct {
	V any
}

func (Scalar) isValue() {}

// Text implements Value.
func (s Scalar) Text() string {
	return cast.ToString(s.V)
}

// ClassList is the value of the class attribute.
type ClassList struct {
	names []string
}

func (*ClassList) isValue() {}

// NewClassList parses classes from a space separated string, a string slice
// or another class list.
func NewClassList(classes any) *ClassList {
	return &ClassList{names: parseClasses(classes)}
}

// Text implements Value.
func (c *ClassList) Text() string {
	return strings.Join(c.names, " ")
}

// Names returns a copy of the class names in order.
func (c *ClassList) Names() []string {
	return slices.Clone(c.names)
}

// Has reports whether name is in the list.
func (c *ClassList) Has(name string) bool {
	return slices.Contains(c.names, name)
}

// Add appends classes. A class already present is moved to the end.
func (c *ClassList) Add(classes any) {
	for _, name := range parseClasses(classes) {
		c.Remove(name)
		c.names = append(c.names, name)
	}
}

// Remove drops name from the list.
func (c *ClassList) Remove(name string) {
	c.names = slices.DeleteFunc(c.names, func(s string) bool { return s == name })
}

// Len returns the number of classes.
func (c *ClassList) Len() int {
	return len(c.names)
}

func parseClasses(classes any) []string {
	switch v := classes.(type) {
	case nil:
		return nil
	case string:
		return strings.Fields(v)
	case []string:
		var names []string
		for _, s := range v {
			names = append(names, strings.Fields(s)...)
		}
		return names
	case *ClassList:
		return v.Names()
	default:
		panic(fmt.Sprintf("htmltree: invalid class value of type %T", classes))
	}
}

var styleParser = css.NewParser()

// StyleMap is the value of the style attribute: CSS declarations keyed by
// property, in insertion order.
type StyleMap struct {
	decls *orderedmap.OrderedMap[string, css.Declaration]
}

func (*StyleMap) isValue() {}

// NewStyleMap parses styles from:
//
//	"display: block; float: left"
//	[]string{"display: block;", "float: left"}
//	map[string]string{"display": "block"}   (properties sorted)
//	[][2]string{{"display", "block"}}
//	another *StyleMap
func NewStyleMap(styles any) *StyleMap {
	m := &StyleMap{decls: orderedmap.New[string, css.Declaration]()}
	m.merge(styles)
	return m
}

func (m *StyleMap) merge(styles any) {
	switch v := styles.(type) {
	case nil:
	case string:
		for _, d := range styleParser.ParseInlineStyle(v) {
			m.decls.Set(d.Property, d)
		}
	case []string:
		for _, s := range v {
			m.merge(s)
		}
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.Set(k, v[k])
		}
	case [][2]string:
		for _, pair := range v {
			m.Set(pair[0], pair[1])
		}
	case *StyleMap:
		for _, d := range v.Declarations() {
			m.decls.Set(d.Property, d)
		}
	default:
		panic(fmt.Sprintf("htmltree: invalid style value of type %T", styles))
	}
}

// Set adds or replaces a declaration. Empty values are ignored.
func (m *StyleMap) Set(property, value string) {
	if d, ok := styleParser.NewDeclaration(property, value); ok {
		m.decls.Set(d.Property, d)
	}
}

// Get returns the value of property.
func (m *StyleMap) Get(property string) (string, bool) {
	d, ok := m.decls.Get(css.NormalizePropertyName(property))
	if !ok {
		return "", false
	}
	return d.Value, true
}

// Has reports whether property is declared.
func (m *StyleMap) Has(property string) bool {
	_, ok := m.decls.Get(css.NormalizePropertyName(property))
	return ok
}

// Remove drops property.
func (m *StyleMap) Remove(property string) {
	m.decls.Delete(css.NormalizePropertyName(property))
}

// Len returns the number of declarations.
func (m *StyleMap) Len() int {
	return m.decls.Len()
}

// Declarations returns the declarations in order.
func (m *StyleMap) Declarations() []css.Declaration {
	out := make([]css.Declaration, 0, m.decls.Len())
	for pair := m.decls.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Text implements Value.
func (m *StyleMap) Text() string {
	return css.FormatDeclarations(m.Declarations())
}

// truthy follows the usual scripting rules: nil, false, zero, "" and "0" are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	case Scalar:
		return truthy(x.V)
	case *ClassList, *StyleMap:
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return cast.ToFloat64(v) != 0
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

// looseEqual compares an attribute value with selector text. Numeric strings
// equal their numeric form, so 123, "123" and "123.0" are all equal.
func looseEqual(v any, want string) bool {
	switch x := v.(type) {
	case nil:
		return want == ""
	case bool:
		return x == truthy(want)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return false
	}
	if s == want {
		return true
	}

	a, okA := numeric(s)
	b, okB := numeric(want)
	return okA && okB && a == b
}

func numeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
