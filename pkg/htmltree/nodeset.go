package htmltree

// NodeSet is an ordered query result. It may contain the same node more than
// once.
type NodeSet []*Node

// Count returns the number of nodes.
func (s NodeSet) Count() int {
	return len(s)
}

// At returns the node at index i, or nil when out of range.
func (s NodeSet) At(i int) *Node {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// First returns the first node or nil.
func (s NodeSet) First() *Node {
	return s.At(0)
}

// Last returns the last node or nil.
func (s NodeSet) Last() *Node {
	return s.At(len(s) - 1)
}

// Each calls fn for every node in order.
func (s NodeSet) Each(fn func(*Node)) NodeSet {
	for _, n := range s {
		fn(n)
	}
	return s
}

// Query runs query from every node of the set and concatenates the results.
func (s NodeSet) Query(query string) NodeSet {
	return QueryAll(s, ParseSequence(query))
}

// QueryFunc is Query with a predicate.
func (s NodeSet) QueryFunc(fn func(*Node) bool) NodeSet {
	return QueryAll(s, SequenceFunc(fn))
}

// FirstOf returns the first match of query, searching the set in order.
func (s NodeSet) FirstOf(query string) NodeSet {
	return QueryFirst(s, ParseSequence(query))
}

// AttributeString returns the attribute text of the first node.
func (s NodeSet) AttributeString(name string) string {
	if n := s.First(); n != nil {
		return n.AttributeString(name)
	}
	return ""
}

// SetAttribute sets an attribute on every node.
func (s NodeSet) SetAttribute(name string, value any) NodeSet {
	return s.Each(func(n *Node) { n.SetAttribute(name, value) })
}

// AddClass adds classes to every node.
func (s NodeSet) AddClass(classes any) NodeSet {
	return s.Each(func(n *Node) { n.AddClass(classes) })
}

// RemoveClass removes a class from every node.
func (s NodeSet) RemoveClass(name string) NodeSet {
	return s.Each(func(n *Node) { n.RemoveClass(name) })
}

// Detach removes every node from its parent.
func (s NodeSet) Detach() NodeSet {
	return s.Each(func(n *Node) { n.DetachSelf() })
}
