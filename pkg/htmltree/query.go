package htmltree

// frame is a pending search: match seq against node and its descendants.
type frame struct {
	node *Node
	seq  Sequence
}

// QueryAll returns every node under starts (the start nodes included) that
// satisfies seq.
//
// The head term is tested against each visited node. A structural match
// consumes the term; the node is a result when no terms remain. Wildcard and
// predicate terms make the node a result without consuming anything. Each
// child is then searched with the remaining terms and, when a term was
// consumed, once more with the full sequence so the head can match again
// deeper in the tree. Results are in search order and are not de-duplicated:
// "div div" over three nested divs reports the innermost one twice.
func QueryAll(starts NodeSet, seq Sequence) NodeSet {
	var result NodeSet
	if len(seq) == 0 {
		return result
	}

	for _, start := range starts {
		if start == nil {
			continue
		}

		// Depth-first with an explicit stack; frames are pushed in reverse so
		// they pop in child order.
		stack := []frame{{node: start, seq: seq}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			head := f.seq[0]
			rest := f.seq
			if head.Match(f.node) {
				if head.Wildcard || head.Predicate != nil {
					result = append(result, f.node)
				} else {
					rest = f.seq[1:]
					if len(rest) == 0 {
						result = append(result, f.node)
					}
				}
			}
			advanced := len(rest) != len(f.seq)

			for i := len(f.node.children) - 1; i >= 0; i-- {
				child, ok := f.node.children[i].(*Node)
				if !ok {
					continue
				}
				if advanced {
					stack = append(stack, frame{node: child, seq: f.seq})
				}
				if len(rest) > 0 {
					stack = append(stack, frame{node: child, seq: rest})
				}
			}
		}
	}

	return result
}

// QueryFirst returns at most one node: the first one found by a search that
// consumes a term on every match and descends into children in order. Unlike
// QueryAll it never retries the full sequence below a partial match.
func QueryFirst(starts NodeSet, seq Sequence) NodeSet {
	if len(seq) == 0 {
		return nil
	}

	for _, start := range starts {
		if start == nil {
			continue
		}

		stack := []frame{{node: start, seq: seq}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			rest := f.seq
			if f.seq[0].Match(f.node) {
				rest = f.seq[1:]
				if len(rest) == 0 {
					return NodeSet{f.node}
				}
			}

			for i := len(f.node.children) - 1; i >= 0; i-- {
				if child, ok := f.node.children[i].(*Node); ok {
					stack = append(stack, frame{node: child, seq: rest})
				}
			}
		}
	}

	return nil
}

// Query returns all nodes in the subtree matching query.
func (n *Node) Query(query string) NodeSet {
	return QueryAll(NodeSet{n}, ParseSequence(query))
}

// QueryFunc returns all nodes in the subtree for which fn returns true.
func (n *Node) QueryFunc(fn func(*Node) bool) NodeSet {
	return QueryAll(NodeSet{n}, SequenceFunc(fn))
}

// QuerySeq returns all nodes in the subtree matching a parsed sequence.
func (n *Node) QuerySeq(seq Sequence) NodeSet {
	return QueryAll(NodeSet{n}, seq)
}

// First returns the first node in the subtree matching query.
func (n *Node) First(query string) NodeSet {
	return QueryFirst(NodeSet{n}, ParseSequence(query))
}

// FirstFunc returns the first node in the subtree for which fn returns true.
func (n *Node) FirstFunc(fn func(*Node) bool) NodeSet {
	return QueryFirst(NodeSet{n}, SequenceFunc(fn))
}

// FirstSeq returns the first node in the subtree matching a parsed sequence.
func (n *Node) FirstSeq(seq Sequence) NodeSet {
	return QueryFirst(NodeSet{n}, seq)
}
