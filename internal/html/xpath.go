package html

import (
	"errors"
	"fmt"
	"strings"

	"htmltree/pkg/htmltree"

	"github.com/antchfx/htmlquery"
)

// ErrUntranslatable is returned by XPath for sequences with predicate or
// unparseable terms.
var ErrUntranslatable = errors.New("query cannot be expressed as XPath")

// XPath translates a sequence into an expression selecting the same distinct
// elements from a document root. A wildcard term selects every element below
// the terms before it, so the terms after it are dropped. Attribute values
// compare as strings.
func XPath(seq htmltree.Sequence) (string, error) {
	if len(seq) == 0 {
		return "", fmt.Errorf("empty query: %w", ErrUntranslatable)
	}

	var b strings.Builder
	for i, sel := range seq {
		b.WriteString("//")

		switch {
		case sel.Predicate != nil:
			return "", fmt.Errorf("term %d is a predicate: %w", i+1, ErrUntranslatable)
		case sel.Wildcard:
			b.WriteString("*")
			return b.String(), nil
		case sel.IsEmpty():
			return "", fmt.Errorf("term %d matches nothing: %w", i+1, ErrUntranslatable)
		}

		if sel.Tag != "" {
			b.WriteString(sel.Tag)
		} else {
			b.WriteString("*")
		}

		var predicates []string
		if sel.Class != "" {
			predicates = append(predicates, fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), %s)", literal(" "+sel.Class+" ")))
		}
		if sel.ID != "" {
			predicates = append(predicates, "@id="+literal(sel.ID))
		}
		if sel.Attr != "" {
			if sel.HasValue {
				predicates = append(predicates, "@"+sel.Attr+"="+literal(sel.Value))
			} else {
				predicates = append(predicates, "@"+sel.Attr)
			}
		}
		for _, p := range predicates {
			b.WriteString("[" + p + "]")
		}
	}

	return b.String(), nil
}

// literal quotes s as an XPath string literal
func literal(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+part+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// XPath returns the source nodes of all elements selected by expr.
func (d *Document) XPath(expr string) (htmltree.NodeSet, error) {
	found, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate XPath %q: %w", expr, err)
	}

	var result htmltree.NodeSet
	for _, n := range found {
		if src, ok := d.origin[n]; ok {
			result = append(result, src)
		}
	}
	return result, nil
}

// QuerySequence runs seq through its XPath translation.
func (d *Document) QuerySequence(seq htmltree.Sequence) (htmltree.NodeSet, error) {
	expr, err := XPath(seq)
	if err != nil {
		return nil, err
	}
	return d.XPath(expr)
}
