package htmltree

// Attribute sets attributes on the node it is attached to. It lets
// attributes and children be mixed in one El call:
//
//	El("input", Type("text"), Name("login"), Flag("required"))
type Attribute func(*Node)

// Attr sets a single attribute. A nil or false value removes it.
func Attr(name string, value any) Attribute {
	return func(n *Node) {
		n.SetAttribute(name, value)
	}
}

// Flag sets a void attribute, rendered by name only.
func Flag(name string) Attribute {
	return Attr(name, true)
}

// Class adds classes from a space separated string or a []string.
func Class(classes any) Attribute {
	return func(n *Node) {
		n.AddClass(classes)
	}
}

// Style merges style declarations, for example Style("float: left").
func Style(styles any) Attribute {
	return func(n *Node) {
		n.AddStyles(styles)
	}
}

// Weight sets the ordering key among siblings. Lower weights render first.
func Weight(weight int) Attribute {
	return Attr(WeightAttr, weight)
}

// HideEmpty suppresses rendering of the node when it has no content.
func HideEmpty() Attribute {
	return Attr(HideEmptyAttr, true)
}

// If guards rendering. cond is a bool or a func(*Node) bool evaluated at
// render time.
func If(cond any) Attribute {
	return Attr(IfAttr, cond)
}

// Attributes groups several attributes into one.
func Attributes(attrs ...Attribute) Attribute {
	return func(n *Node) {
		for _, attr := range attrs {
			attr(n)
		}
	}
}

func ID(id string) Attribute     { return Attr("id", id) }
func Name(name string) Attribute { return Attr("name", name) }
func Type(typ string) Attribute  { return Attr("type", typ) }
func Href(href string) Attribute { return Attr("href", href) }
func Src(src string) Attribute   { return Attr("src", src) }
func For(id string) Attribute    { return Attr("for", id) }
