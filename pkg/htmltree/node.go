package htmltree

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync/atomic"

	"htmltree/internal/config"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	g "maragu.dev/gomponents"
)

// Reserved attributes. Attributes whose name starts with an underscore are
// never rendered.
const (
	WeightAttr    = "_weight"    // ordering key among siblings
	RawAttr       = "_raw"       // text children are written unescaped
	HideEmptyAttr = "_hideempty" // element renders nothing when IsEmpty
	IfAttr        = "_if"        // bool or func(*Node) bool render guard
)

// Lazy produces a child at render time. The result may be a string, a *Node,
// a gomponents node, a fmt.Stringer or nil.
type Lazy func() any

// Node is an element of the markup tree. A node with an empty tag is a
// fragment: its children are rendered without wrapping markup.
//
// A node owns its children. The parent link is a back-reference that is
// cleared whenever the node is detached.
type Node struct {
	tag       string
	attrs     *orderedmap.OrderedMap[string, Value]
	children  []any
	parent    *Node
	separator string
}

var _ g.Node = (*Node)(nil)

// New creates a node with the given tag and attaches items to it. See Attach
// for the accepted item types.
func New(tag string, items ...any) *Node {
	n := &Node{
		tag:   tag,
		attrs: orderedmap.New[string, Value](),
	}
	return n.Attach(items...)
}

// Tag returns the tag name.
func (n *Node) Tag() string {
	return n.tag
}

// SetTag changes the tag name.
func (n *Node) SetTag(tag string) *Node {
	n.tag = tag
	return n
}

// Parent returns the owning node or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child items in order.
func (n *Node) Children() []any {
	return slices.Clone(n.children)
}

// Nodes returns the children that are nodes.
func (n *Node) Nodes() []*Node {
	var nodes []*Node
	for _, item := range n.children {
		if child, ok := item.(*Node); ok {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// Count returns the number of children.
func (n *Node) Count() int {
	return len(n.children)
}

// Separator returns the string written between rendered children.
func (n *Node) Separator() string {
	return n.separator
}

// SetSeparator sets the string written between rendered children.
func (n *Node) SetSeparator(separator string) *Node {
	n.separator = separator
	return n
}

// Weight returns the ordering key taken from the _weight attribute.
func (n *Node) Weight() int {
	v, ok := n.attrs.Get(WeightAttr)
	if !ok {
		return 0
	}
	if s, ok := v.(Scalar); ok {
		return toWeight(s.V)
	}
	return toWeight(v.Text())
}

// toWeight converts a weight attribute to an int. Strings are read in base 10
// with surrounding space ignored, and a fraction or trailing text is cut off,
// so "010" is 10 and "2.5" is 2.
func toWeight(v any) int {
	s, ok := v.(string)
	if !ok {
		return cast.ToInt(v)
	}
	if f, ok := numeric(s); ok {
		return int(f)
	}
	return cast.ToInt(leadingInteger(s))
}

// leadingInteger returns the optionally signed run of digits s starts with,
// with leading zeros removed.
func leadingInteger(s string) string {
	s = strings.TrimSpace(s)
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return "0"
	}
	return sign + digits
}

// WeightOf returns the weight of a child item. Anything but a node weighs 0.
func WeightOf(item any) int {
	if child, ok := item.(*Node); ok && child != nil {
		return child.Weight()
	}
	return 0
}

// ByWeight orders child items by ascending weight. It is the default
// comparator of Reorder.
func ByWeight(a, b any) int {
	return cmp.Compare(WeightOf(a), WeightOf(b))
}

// Attach adds items as children, one at a time. Each item is inserted after
// the last sibling whose weight is not greater than its own, so siblings of
// equal weight keep their attachment order.
//
// Accepted items:
//
//	*Node                    child element; detached from its previous parent first
//	string                   text
//	Lazy, func() any         content produced at render time
//	gomponents.Node          opaque content, rendered but never queried
//	Attribute                sets an attribute instead of adding a child
//	[]any, []*Node, NodeSet, []string, []Attribute
//	                         attached element by element
//	nil                      ignored
//
// Any other type, or attaching a node into its own subtree, panics.
func (n *Node) Attach(items ...any) *Node {
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case *Node:
			if v != nil {
				n.insert(v)
			}
		case string:
			n.insert(v)
		case Attribute:
			v(n)
		case Lazy:
			n.insert(v)
		case func() any:
			n.insert(Lazy(v))
		case []any:
			n.Attach(v...)
		case []*Node:
			for _, child := range v {
				n.Attach(child)
			}
		case NodeSet:
			for _, child := range v {
				n.Attach(child)
			}
		case []string:
			for _, text := range v {
				n.insert(text)
			}
		case []Attribute:
			for _, attr := range v {
				attr(n)
			}
		case g.Node:
			n.insert(v)
		default:
			panic(fmt.Sprintf("htmltree: cannot attach value of type %T", item))
		}
	}
	return n
}

func (n *Node) insert(item any) {
	if child, ok := item.(*Node); ok {
		for p := n; p != nil; p = p.parent {
			if p == child {
				panic("htmltree: cannot attach a node to its own subtree")
			}
		}
		if child.parent != nil {
			child.parent.Detach(child)
		}
		child.parent = n
	}

	weight := WeightOf(item)
	i := len(n.children)
	for i > 0 && WeightOf(n.children[i-1]) > weight {
		i--
	}
	n.children = slices.Insert(n.children, i, item)
}

// Detach removes the first occurrence of child. Nodes are matched by
// identity, other items by equality. A missing child is ignored.
func (n *Node) Detach(child any) *Node {
	for i, item := range n.children {
		if !sameItem(item, child) {
			continue
		}
		n.children = slices.Delete(n.children, i, i+1)
		if node, ok := item.(*Node); ok {
			node.parent = nil
		}
		break
	}
	return n
}

func sameItem(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// DetachSelf removes the node from its parent, if any.
func (n *Node) DetachSelf() *Node {
	if n.parent != nil {
		n.parent.Detach(n)
	}
	return n
}

// Clear removes all children.
func (n *Node) Clear() *Node {
	for _, item := range n.children {
		if child, ok := item.(*Node); ok {
			child.parent = nil
		}
	}
	n.children = nil
	return n
}

// Reorder sorts the children once with compare, or by weight when compare is nil.
// The sort is stable.
func (n *Node) Reorder(compare func(a, b any) int) *Node {
	if compare == nil {
		compare = ByWeight
	}
	slices.SortStableFunc(n.children, compare)
	return n
}

// IsEmpty reports whether the node has no content. Single tags such as <img>
// are never empty.
func (n *Node) IsEmpty() bool {
	return n.isEmpty(defaultRenderer.cfg)
}

func (n *Node) isEmpty(cfg config.Config) bool {
	if cfg.IsSingleTag(n.tag) {
		return false
	}
	for _, item := range n.children {
		switch v := item.(type) {
		case *Node:
			if !v.isEmpty(cfg) {
				return false
			}
		case string:
			if v != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Walk calls fn for the node and every descendant node in document order.
func (n *Node) Walk(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(current)
		for i := len(current.children) - 1; i >= 0; i-- {
			if child, ok := current.children[i].(*Node); ok {
				stack = append(stack, child)
			}
		}
	}
}

// Attributes

// SetAttribute sets an attribute. class and style are parsed into a
// ClassList and a StyleMap. Setting a visible attribute to nil or false
// removes it; hidden attributes (leading underscore) store any value.
func (n *Node) SetAttribute(name string, value any) *Node {
	switch {
	case name == "class":
		return n.SetClasses(value)
	case name == "style":
		return n.SetStyles(value)
	case isHidden(name):
		n.attrs.Set(name, toValue(value))
	case value == nil || value == false:
		n.attrs.Delete(name)
	default:
		n.attrs.Set(name, toValue(value))
	}
	return n
}

func toValue(value any) Value {
	if v, ok := value.(Value); ok {
		return v
	}
	return Scalar{V: value}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, "_")
}

// Attribute returns the raw attribute value: the scalar itself, or the
// *ClassList / *StyleMap.
func (n *Node) Attribute(name string) (any, bool) {
	v, ok := n.attrs.Get(name)
	if !ok {
		return nil, false
	}
	if s, ok := v.(Scalar); ok {
		return s.V, true
	}
	return v, true
}

// AttributeValue returns the stored attribute variant.
func (n *Node) AttributeValue(name string) (Value, bool) {
	return n.attrs.Get(name)
}

// AttributeString returns the attribute text, or "" when absent.
func (n *Node) AttributeString(name string) string {
	v, ok := n.attrs.Get(name)
	if !ok {
		return ""
	}
	return v.Text()
}

// HasAttribute reports whether the attribute is set to a non-nil value.
func (n *Node) HasAttribute(name string) bool {
	v, ok := n.attrs.Get(name)
	if !ok {
		return false
	}
	if s, ok := v.(Scalar); ok {
		return s.V != nil
	}
	return true
}

// RemoveAttribute deletes an attribute.
func (n *Node) RemoveAttribute(name string) *Node {
	n.attrs.Delete(name)
	return n
}

// EachAttribute calls fn for every attribute in insertion order.
func (n *Node) EachAttribute(fn func(name string, value Value)) {
	for pair := n.attrs.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return n.AttributeString("id")
}

var idSeq atomic.Int64

// EnsureID returns the id attribute, generating and setting one such as
// "div-3" when the node has none.
func (n *Node) EnsureID() string {
	if id := n.ID(); id != "" {
		return id
	}
	base := n.tag
	if base == "" {
		base = "node"
	}
	id := fmt.Sprintf("%s-%d", strings.ToLower(base), idSeq.Add(1))
	n.SetAttribute("id", id)
	return id
}

// Classes

// SetClasses replaces the class list. classes may be a space separated
// string, a []string, a *ClassList or nil (an empty class attribute).
func (n *Node) SetClasses(classes any) *Node {
	n.attrs.Set("class", NewClassList(classes))
	return n
}

// AddClass appends classes, moving already present ones to the end.
func (n *Node) AddClass(classes any) *Node {
	n.classList().Add(classes)
	return n
}

// RemoveClass removes a class.
func (n *Node) RemoveClass(name string) *Node {
	if list, ok := n.attrs.Get("class"); ok {
		if cl, ok := list.(*ClassList); ok {
			cl.Remove(name)
		}
	}
	return n
}

// HasClass reports whether the node has the class.
func (n *Node) HasClass(name string) bool {
	v, ok := n.attrs.Get("class")
	if !ok {
		return false
	}
	if cl, ok := v.(*ClassList); ok {
		return cl.Has(name)
	}
	return slices.Contains(strings.Fields(v.Text()), name)
}

// Classes returns the class names.
func (n *Node) Classes() []string {
	if v, ok := n.attrs.Get("class"); ok {
		if cl, ok := v.(*ClassList); ok {
			return cl.Names()
		}
	}
	return nil
}

func (n *Node) classList() *ClassList {
	if v, ok := n.attrs.Get("class"); ok {
		if cl, ok := v.(*ClassList); ok {
			return cl
		}
	}
	cl := NewClassList(nil)
	n.attrs.Set("class", cl)
	return cl
}

// Styles

// SetStyles replaces the style attribute. See NewStyleMap for the accepted
// forms.
func (n *Node) SetStyles(styles any) *Node {
	n.attrs.Set("style", NewStyleMap(styles))
	return n
}

// AddStyle adds or replaces one declaration.
func (n *Node) AddStyle(property, value string) *Node {
	n.styleMap().Set(property, value)
	return n
}

// AddStyles merges declarations in any form accepted by NewStyleMap.
func (n *Node) AddStyles(styles any) *Node {
	n.styleMap().merge(styles)
	return n
}

// HasStyle reports whether property is declared.
func (n *Node) HasStyle(property string) bool {
	if v, ok := n.attrs.Get("style"); ok {
		if sm, ok := v.(*StyleMap); ok {
			return sm.Has(property)
		}
	}
	return false
}

// Style returns the value of a declared property.
func (n *Node) Style(property string) (string, bool) {
	if v, ok := n.attrs.Get("style"); ok {
		if sm, ok := v.(*StyleMap); ok {
			return sm.Get(property)
		}
	}
	return "", false
}

// RemoveStyle removes a declaration.
func (n *Node) RemoveStyle(property string) *Node {
	if v, ok := n.attrs.Get("style"); ok {
		if sm, ok := v.(*StyleMap); ok {
			sm.Remove(property)
		}
	}
	return n
}

func (n *Node) styleMap() *StyleMap {
	if v, ok := n.attrs.Get("style"); ok {
		if sm, ok := v.(*StyleMap); ok {
			return sm
		}
	}
	sm := NewStyleMap(nil)
	n.attrs.Set("style", sm)
	return sm
}
