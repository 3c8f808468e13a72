// Package htmltree builds HTML documents as a tree of nodes and finds nodes
// in that tree with a small selector language.
//
// Trees are assembled with El and the tag helpers:
//
//	form := htmltree.Form(htmltree.ID("login"),
//		htmltree.Input(htmltree.Type("text"), htmltree.Name("user")),
//		htmltree.Input(htmltree.Type("submit"), htmltree.Class("grey")),
//	)
//
// Children are kept ordered by their _weight attribute (see Weight), with
// ties in attachment order.
//
// Queries are whitespace separated terms of the form
//
//	tag.class#id[attr=value]
//
// joined by descendant combinators, plus the wildcard "*" and predicate
// functions:
//
//	form.Query("form input.grey[type=submit]")
//	form.First("[name=user]")
//
// Malformed terms never fail; they match nothing.
package htmltree
