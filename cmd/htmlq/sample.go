package main

import (
	h "htmltree/pkg/htmltree"
)

// sampleDocument is the login form queries run against with -sample
func sampleDocument() *h.Node {
	return h.HTML(
		h.Head(h.El("title", "Sign in")),
		h.Body(
			h.Form(h.ID("sample1_form"), h.Attr("method", "POST"),
				h.Div(h.Class("form-row"),
					h.Label(h.For("field-login"), "Username"),
					h.Input(h.ID("field-login"), h.Name("login"), h.Type("text"), h.Attr("value", "user"), h.Flag("required")),
				),
				h.Div(h.Class("form-row"),
					h.Label(h.For("field-password"), "Password"),
					h.Input(h.ID("field-password"), h.Name("password"), h.Type("password"), h.Attr("value", "pass"), h.Flag("required")),
				),
				h.Div(h.Class("form-buttons"),
					h.Input(h.Name("op"), h.Type("submit"), h.Attr("value", "Submit"), h.Class("grey")),
					h.Button("Cancel"),
				),
			),
		),
	)
}
