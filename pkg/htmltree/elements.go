package htmltree

import "fmt"

// El creates an element with an arbitrary tag. items are attached in order,
// see Node.Attach.
func El(tag string, items ...any) *Node {
	return New(tag, items...)
}

// Fragment creates a node without wrapping markup.
func Fragment(items ...any) *Node {
	return New("", items...)
}

// Raw creates a fragment whose text is written without escaping.
func Raw(text string) *Node {
	return New("", Attr(RawAttr, true), text)
}

// Rawf is Raw with fmt.Sprintf formatting.
func Rawf(format string, args ...any) *Node {
	return Raw(fmt.Sprintf(format, args...))
}

func A(items ...any) *Node        { return El("a", items...) }
func Body(items ...any) *Node     { return El("body", items...) }
func Br(items ...any) *Node       { return El("br", items...) }
func Button(items ...any) *Node   { return El("button", items...) }
func Div(items ...any) *Node      { return El("div", items...) }
func Footer(items ...any) *Node   { return El("footer", items...) }
func Form(items ...any) *Node     { return El("form", items...) }
func H1(items ...any) *Node       { return El("h1", items...) }
func H2(items ...any) *Node       { return El("h2", items...) }
func H3(items ...any) *Node       { return El("h3", items...) }
func H4(items ...any) *Node       { return El("h4", items...) }
func H5(items ...any) *Node       { return El("h5", items...) }
func H6(items ...any) *Node       { return El("h6", items...) }
func Head(items ...any) *Node     { return El("head", items...) }
func Header(items ...any) *Node   { return El("header", items...) }
func HTML(items ...any) *Node     { return El("html", items...) }
func I(items ...any) *Node        { return El("i", items...) }
func Img(items ...any) *Node      { return El("img", items...) }
func Input(items ...any) *Node    { return El("input", items...) }
func Label(items ...any) *Node    { return El("label", items...) }
func Li(items ...any) *Node       { return El("li", items...) }
func Menu(items ...any) *Node     { return El("menu", items...) }
func Option(items ...any) *Node   { return El("option", items...) }
func P(items ...any) *Node        { return El("p", items...) }
func Pre(items ...any) *Node      { return El("pre", items...) }
func Script(items ...any) *Node   { return El("script", items...) }
func Select(items ...any) *Node   { return El("select", items...) }
func Span(items ...any) *Node     { return El("span", items...) }
func StyleEl(items ...any) *Node  { return El("style", items...) }
func Table(items ...any) *Node    { return El("table", items...) }
func Tbody(items ...any) *Node    { return El("tbody", items...) }
func Td(items ...any) *Node       { return El("td", items...) }
func Textarea(items ...any) *Node { return El("textarea", items...) }
func Tfoot(items ...any) *Node    { return El("tfoot", items...) }
func Th(items ...any) *Node       { return El("th", items...) }
func Thead(items ...any) *Node    { return El("thead", items...) }
func Tr(items ...any) *Node       { return El("tr", items...) }
func Ul(items ...any) *Node       { return El("ul", items...) }
