package html

import (
	"htmltree/pkg/htmltree"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a node tree exported to golang.org/x/net/html and wrapped by
// goquery, so it can be searched with full CSS selectors and serialized.
// Every exported element maps back to the node it was built from.
//
// A Document is a snapshot: later changes to the source tree are not seen.
type Document struct {
	doc  *goquery.Document
	root *html.Node

	origin   map[*html.Node]*htmltree.Node
	exported map[*htmltree.Node]*html.Node
}

// Matcher selects exported nodes. Compiled cascadia selectors implement it.
type Matcher = goquery.Matcher
