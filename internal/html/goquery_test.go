package html

import (
	"slices"
	"testing"

	"htmltree/pkg/htmltree"
)

func loginPage() *htmltree.Node {
	return htmltree.HTML(
		htmltree.Body(
			htmltree.Form(htmltree.ID("sample1_form"), htmltree.Attr("method", "POST"),
				htmltree.Div(htmltree.Class("form-row"),
					htmltree.Label("Username"),
					htmltree.Input(htmltree.ID("field-login"), htmltree.Name("login"), htmltree.Type("text"), htmltree.Flag("required")),
				),
				htmltree.Div(htmltree.Class("form-row"),
					htmltree.Label("Password"),
					htmltree.Input(htmltree.ID("field-password"), htmltree.Name("password"), htmltree.Type("password"), htmltree.Flag("required")),
				),
				htmltree.Div(htmltree.Class("form-buttons"),
					htmltree.Input(htmltree.Name("op"), htmltree.Type("submit"), htmltree.Class("grey")),
					htmltree.Button("Cancel"),
				),
			),
		),
	)
}

func unique(set htmltree.NodeSet) htmltree.NodeSet {
	var out htmltree.NodeSet
	for _, n := range set {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Queries whose meaning is the same in both grammars must select the same
// nodes, up to the duplicates the tree engine keeps.
func TestQueryAgreesWithCSS(t *testing.T) {
	page := loginPage()
	doc, err := NewDocument(page)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	queries := []string{
		"input",
		"body input.grey[type=submit]",
		"#field-login",
		"div.form-row",
		"form input",
		".form-row input[required]",
		"[name]",
		"form *",
		"*",
		"div label",
		"table",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			want, err := doc.QuerySelectorAll(q)
			if err != nil {
				t.Fatalf("QuerySelectorAll() error = %v", err)
			}
			got := unique(page.Query(q))
			if !slices.Equal(got, want) {
				t.Errorf("Query(%q) = %d nodes, CSS = %d nodes", q, got.Count(), want.Count())
			}
		})
	}
}

func TestQuerySelector(t *testing.T) {
	doc, err := NewDocument(loginPage())
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	n, err := doc.QuerySelector("div.form-buttons > input")
	if err != nil {
		t.Fatalf("QuerySelector() error = %v", err)
	}
	if n.AttributeString("name") != "op" {
		t.Errorf("QuerySelector() name = %q, want op", n.AttributeString("name"))
	}

	if _, err := doc.QuerySelector("table"); err == nil {
		t.Errorf("QuerySelector(table) expected error")
	}
	if _, err := doc.QuerySelectorAll("div["); err == nil {
		t.Errorf("QuerySelectorAll(div[) expected error")
	}
}

func TestMatches(t *testing.T) {
	page := loginPage()
	doc, err := NewDocument(page)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	login := page.First("#field-login").First()

	tests := []struct {
		selector string
		want     bool
	}{
		{"input", true},
		{"form > div > input:first-of-type", true},
		{"label + input", true},
		{"input[type=password]", false},
	}
	for _, tt := range tests {
		got, err := doc.Matches(login, tt.selector)
		if err != nil {
			t.Fatalf("Matches(%q) error = %v", tt.selector, err)
		}
		if got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.selector, got, tt.want)
		}
	}

	if ok, err := doc.Matches(htmltree.Div(), "div"); err != nil || ok {
		t.Errorf("Matches(foreign node) = %v, %v", ok, err)
	}
}

func TestSelection(t *testing.T) {
	doc, err := NewDocument(loginPage())
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	if got := doc.Selection().Find("input").Length(); got != 3 {
		t.Errorf("Find(input) length = %d, want 3", got)
	}
	if got := doc.Selection().Find("label").First().Text(); got != "Username" {
		t.Errorf("first label text = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		selector string
		wantErr  bool
	}{
		{"div > p:first-child", false},
		{"input.grey[type=submit]", false},
		{"a, b", false},
		{"div[", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := Validate(tt.selector); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.selector, err, tt.wantErr)
		}
	}
}
