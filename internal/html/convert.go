package html

import (
	"fmt"
	"strings"

	"htmltree/internal/config"
	"htmltree/pkg/htmltree"

	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	g "maragu.dev/gomponents"
)

// exporter turns htmltree nodes into x/net/html nodes. It applies the same
// visibility and attribute rules as the text renderer.
type exporter struct {
	renderer *htmltree.Renderer

	origin   map[*html.Node]*htmltree.Node
	exported map[*htmltree.Node]*html.Node
}

func newExporter(cfg config.Config) *exporter {
	return &exporter{
		renderer: htmltree.NewRenderer(cfg),
		origin:   make(map[*html.Node]*htmltree.Node),
		exported: make(map[*htmltree.Node]*html.Node),
	}
}

// Convert exports n as a list of top-level x/net/html nodes. A fragment
// yields its children, an invisible node yields nothing.
func Convert(n *htmltree.Node) ([]*html.Node, error) {
	return newExporter(config.Default()).node(n)
}

func (e *exporter) node(n *htmltree.Node) ([]*html.Node, error) {
	if !e.renderer.Visible(n) {
		return nil, nil
	}

	children, err := e.items(n)
	if err != nil {
		return nil, err
	}
	if n.Tag() == "" {
		return children, nil
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag(),
		DataAtom: atom.Lookup([]byte(n.Tag())),
	}
	for _, a := range e.renderer.Attributes(n) {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	for _, child := range children {
		el.AppendChild(child)
	}

	e.origin[el] = n
	e.exported[n] = el
	return []*html.Node{el}, nil
}

func (e *exporter) items(n *htmltree.Node) ([]*html.Node, error) {
	var out []*html.Node
	raw := n.RawText()

	for i, item := range n.Children() {
		if i > 0 && n.Separator() != "" {
			out = append(out, &html.Node{Type: html.RawNode, Data: n.Separator()})
		}
		if lazy, ok := item.(htmltree.Lazy); ok {
			item = lazy()
		}

		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, text(v, raw))
		case *htmltree.Node:
			nodes, err := e.node(v)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		case g.Node:
			var b strings.Builder
			if err := v.Render(&b); err != nil {
				return nil, fmt.Errorf("failed to render embedded node: %w", err)
			}
			out = append(out, &html.Node{Type: html.RawNode, Data: b.String()})
		case fmt.Stringer:
			out = append(out, text(v.String(), raw))
		default:
			out = append(out, text(cast.ToString(v), raw))
		}
	}

	return out, nil
}

func text(s string, raw bool) *html.Node {
	if raw {
		return &html.Node{Type: html.RawNode, Data: s}
	}
	return &html.Node{Type: html.TextNode, Data: s}
}
