package html

import (
	"strings"
	"testing"

	"htmltree/pkg/htmltree"

	"golang.org/x/net/html"
	g "maragu.dev/gomponents"
)

func exportHTML(t *testing.T, n *htmltree.Node) string {
	t.Helper()
	doc, err := NewDocument(n)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	out, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	return out
}

func TestExport(t *testing.T) {
	tests := []struct {
		name string
		node *htmltree.Node
		want string
	}{
		{
			name: "nested",
			node: htmltree.Div(htmltree.ID("a"), htmltree.Span("x")),
			want: `<div id="a"><span>x</span></div>`,
		},
		{
			name: "fragment",
			node: htmltree.Fragment(htmltree.Span("a"), htmltree.Span("b")),
			want: "<span>a</span><span>b</span>",
		},
		{
			name: "escaped text",
			node: htmltree.P("a<b & c"),
			want: "<p>a&lt;b &amp; c</p>",
		},
		{
			name: "raw text",
			node: htmltree.Div(htmltree.Raw("<b>x</b>")),
			want: "<div><b>x</b></div>",
		},
		{
			name: "hidden attributes and flags",
			node: htmltree.Input(htmltree.Name("q"), htmltree.Weight(3), htmltree.Flag("required"), htmltree.Attr("disabled", "0")),
			want: `<input name="q" required=""/>`,
		},
		{
			name: "class and style",
			node: htmltree.Div(htmltree.Class("a b"), htmltree.Style("color: red")),
			want: `<div class="a b" style="color: red;"></div>`,
		},
		{
			name: "guard",
			node: htmltree.Div(htmltree.Span(htmltree.If(false), "gone"), "t"),
			want: "<div>t</div>",
		},
		{
			name: "hide empty",
			node: htmltree.Div(htmltree.Ul(htmltree.HideEmpty()), htmltree.Img(htmltree.Src("x.png"))),
			want: `<div><img src="x.png"/></div>`,
		},
		{
			name: "separator",
			node: htmltree.Ul(htmltree.Li("a"), htmltree.Li("b")).SetSeparator("\n"),
			want: "<ul><li>a</li>\n<li>b</li></ul>",
		},
		{
			name: "gomponents child",
			node: htmltree.Div(g.Raw("<i>r</i>"), g.Text("<")),
			want: "<div><i>r</i>&lt;</div>",
		},
		{
			name: "lazy",
			node: htmltree.Div(htmltree.Lazy(func() any { return htmltree.Span("late") })),
			want: "<div><span>late</span></div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exportHTML(t, tt.node); got != tt.want {
				t.Errorf("HTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	nodes, err := Convert(htmltree.Fragment(htmltree.Span("a"), "b", htmltree.Div(htmltree.If(false))))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("Convert() returned %d nodes, want 2", len(nodes))
	}
	if nodes[0].Type != html.ElementNode || nodes[0].Data != "span" {
		t.Errorf("nodes[0] = %+v", nodes[0])
	}
	if nodes[1].Type != html.TextNode || nodes[1].Data != "b" {
		t.Errorf("nodes[1] = %+v", nodes[1])
	}
}

func TestExportVoidElementWithChildren(t *testing.T) {
	doc, err := NewDocument(htmltree.Input("text"))
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	if _, err := doc.HTML(); err == nil {
		t.Errorf("HTML() expected error for void element with children")
	}
}

func TestNewDocumentNil(t *testing.T) {
	if _, err := NewDocument(nil); err == nil {
		t.Errorf("NewDocument(nil) expected error")
	}
}

func TestSourceMapping(t *testing.T) {
	span := htmltree.Span("x")
	hidden := htmltree.I(htmltree.If(false))
	root := htmltree.Div(span, hidden)

	doc, err := NewDocument(root)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	el := doc.Exported(span)
	if el == nil || el.Data != "span" {
		t.Fatalf("Exported(span) = %v", el)
	}
	if doc.Source(el) != span {
		t.Errorf("Source() did not map back to the span")
	}
	if doc.Exported(hidden) != nil {
		t.Errorf("hidden node was exported")
	}

	outer, err := doc.OuterHTML(span)
	if err != nil {
		t.Fatalf("OuterHTML() error = %v", err)
	}
	if outer != "<span>x</span>" {
		t.Errorf("OuterHTML() = %q", outer)
	}
	if !strings.Contains(doc.Text(), "x") {
		t.Errorf("Text() = %q", doc.Text())
	}
}
