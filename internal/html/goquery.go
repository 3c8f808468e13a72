package html

import (
	"fmt"
	"strings"

	"htmltree/internal/config"
	"htmltree/pkg/htmltree"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// NewDocument exports root into a new document.
func NewDocument(root *htmltree.Node) (*Document, error) {
	return NewDocumentWithConfig(root, config.Default())
}

// NewDocumentWithConfig exports root using cfg for void attributes and
// single tags.
func NewDocumentWithConfig(root *htmltree.Node, cfg config.Config) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("failed to export tree: nil root")
	}

	e := newExporter(cfg)
	nodes, err := e.node(root)
	if err != nil {
		return nil, fmt.Errorf("failed to export tree: %w", err)
	}

	doc := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		doc.AppendChild(n)
	}

	return &Document{
		doc:      goquery.NewDocumentFromNode(doc),
		root:     doc,
		origin:   e.origin,
		exported: e.exported,
	}, nil
}

// Compile parses a CSS selector group.
func Compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to compile selector %q: %w", selector, err)
	}
	return sel, nil
}

// Validate reports whether selector is valid CSS.
func Validate(selector string) error {
	_, err := Compile(selector)
	return err
}

// Selection returns the goquery selection of the whole document.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// Root returns the x/net/html document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Source returns the tree node an exported element was built from.
func (d *Document) Source(n *html.Node) *htmltree.Node {
	return d.origin[n]
}

// Exported returns the element exported for n, or nil when n was not
// rendered.
func (d *Document) Exported(n *htmltree.Node) *html.Node {
	return d.exported[n]
}

// QuerySelectorAll returns the source nodes of all elements matching a CSS
// selector, in document order.
func (d *Document) QuerySelectorAll(selector string) (htmltree.NodeSet, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return d.Match(sel), nil
}

// QuerySelector returns the source node of the first element matching a CSS
// selector.
func (d *Document) QuerySelector(selector string) (*htmltree.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}

	found := d.doc.FindMatcher(sel).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("no element found for selector: %s", selector)
	}
	return d.origin[found.Get(0)], nil
}

// Match returns the source nodes of all elements matched by m.
func (d *Document) Match(m Matcher) htmltree.NodeSet {
	var result htmltree.NodeSet
	d.doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
		if n, ok := d.origin[s.Get(0)]; ok {
			result = append(result, n)
		}
	})
	return result
}

// Matches checks if the node matches a CSS selector
func (d *Document) Matches(n *htmltree.Node, selector string) (bool, error) {
	sel, err := Compile(selector)
	if err != nil {
		return false, err
	}

	el := d.exported[n]
	if el == nil {
		return false, nil
	}
	return sel.Match(el), nil
}

// Text returns the text content of the document.
func (d *Document) Text() string {
	return d.doc.Text()
}

// HTML returns the complete HTML document as string
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}
	return out, nil
}

// OuterHTML serializes the element exported for n.
func (d *Document) OuterHTML(n *htmltree.Node) (string, error) {
	el := d.exported[n]
	if el == nil {
		return "", nil
	}

	var buf strings.Builder
	if err := html.Render(&buf, el); err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}
	return buf.String(), nil
}
