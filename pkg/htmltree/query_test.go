package htmltree

import (
	"strings"
	"testing"
)

func sampleLoginPage() *Node {
	return HTML(
		Body(
			Form(ID("sample1_form"), Attr("method", "POST"),
				Div(Class("form-row"),
					Label("Username"),
					Input(ID("field-login"), Name("login"), Type("text"), Attr("value", "user"), Flag("required")),
				),
				Div(Class("form-row"),
					Label("Password"),
					Input(ID("field-password"), Name("password"), Type("password"), Attr("value", "pass"), Flag("required")),
				),
				Div(Class("form-buttons"),
					Input(Name("op"), Type("submit"), Attr("value", "Submit"), Class("grey")),
					Button("Cancel"),
				),
			),
		),
	)
}

func sampleSelect() *Node {
	return Select(Name("select1"),
		Option(Attr("value", ""), "-- Prompt --"),
		Option(Attr("value", 123), "Title 123"),
	)
}

func sampleForm() *Node {
	return Form(Name("form1"),
		Input(Type("text"), Name("title")),
	)
}

func isLabel(n *Node) bool {
	return n.Tag() == "label"
}

func TestQuery(t *testing.T) {
	page := sampleLoginPage()

	tests := []struct {
		query string
		want  int
	}{
		{"input", 3},
		{"body input.grey[type=submit]", 1},
		{"#field-login", 1},
		{"form input", 3},
		{"html body form div input", 3},
		{".form-row input[required]", 2},
		{"div.form-row", 2},
		{"form button", 1},
		{"none", 0},
		{"input body", 0},
		{"", 0},
		{"input %", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := page.Query(tt.query).Count(); got != tt.want {
				t.Errorf("Query(%q) count = %d, want %d", tt.query, got, tt.want)
			}
		})
	}

	if got := page.QueryFunc(isLabel).Count(); got != 2 {
		t.Errorf("QueryFunc(label) count = %d, want 2", got)
	}
}

func TestQueryOrder(t *testing.T) {
	page := sampleLoginPage()

	var names []string
	page.Query("input").Each(func(n *Node) { names = append(names, n.AttributeString("name")) })
	if got := strings.Join(names, ","); got != "login,password,op" {
		t.Errorf("result order = %s", got)
	}
}

func TestFirst(t *testing.T) {
	page := sampleLoginPage()

	tests := []struct {
		query    string
		wantName string
	}{
		{"input", "login"},
		{"body input.grey[type=submit]", "op"},
		{"#field-login", "login"},
		{"#field-password", "password"},
		{"div input[type=submit]", "op"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found := page.First(tt.query)
			if found.Count() != 1 {
				t.Fatalf("First(%q) count = %d, want 1", tt.query, found.Count())
			}
			if got := found.AttributeString("name"); got != tt.wantName {
				t.Errorf("First(%q) name = %q, want %q", tt.query, got, tt.wantName)
			}
		})
	}

	label := page.FirstFunc(isLabel)
	if label.Count() != 1 || label.First().Children()[0] != "Username" {
		t.Errorf("FirstFunc(label) = %v", label)
	}

	if page.First("none").Count() != 0 || page.First("").Count() != 0 {
		t.Errorf("First() found a node for a query without matches")
	}
}

func TestQueryEmptyResult(t *testing.T) {
	page := sampleLoginPage()
	none := page.Query("none")
	// operations on an empty set are no-ops
	none.AddClass("x").SetAttribute("title", "t").Detach()
	if none.First() != nil || none.Last() != nil || none.AttributeString("id") != "" {
		t.Errorf("empty set returned a node")
	}
}

func TestQueryWildcard(t *testing.T) {
	page := sampleLoginPage()

	total := 0
	page.Walk(func(*Node) { total++ })
	if total != 12 {
		t.Fatalf("sample tree has %d nodes, want 12", total)
	}

	if got := page.Query("*").Count(); got != total {
		t.Errorf("Query(*) count = %d, want %d", got, total)
	}
	// the matched ancestor itself is not a descendant
	if got := sampleForm().Query("form *").Count(); got != 1 {
		t.Errorf("Query(form *) count = %d, want 1", got)
	}
	if got := page.First("*").First(); got != page {
		t.Errorf("First(*) = %v, want root", got)
	}
}

func TestQueryValues(t *testing.T) {
	sel := sampleSelect()

	if got := sel.Query(`[value=""]`).Count(); got != 1 {
		t.Errorf("empty value count = %d, want 1", got)
	}
	if got := sel.Query(`[value="123"]`).Count(); got != 1 {
		t.Errorf("numeric value count = %d, want 1", got)
	}
	if got := sel.Query("[value]").Count(); got != 2 {
		t.Errorf("value presence count = %d, want 2", got)
	}
}

func TestQueryComputedValue(t *testing.T) {
	title := func(n *Node) any { return n.Tag() + "-title" }
	form := Form(Input(Attr("title", title)), Div(Attr("title", title)))

	if got := form.Query("[title=input-title]").Count(); got != 1 {
		t.Errorf("computed value count = %d, want 1", got)
	}
	if got := form.Query("div[title=div-title]").Count(); got != 1 {
		t.Errorf("computed value with tag count = %d, want 1", got)
	}
	if got := form.Query("[title]").Count(); got != 2 {
		t.Errorf("computed presence count = %d, want 2", got)
	}
}

func TestQueryIncludesRoot(t *testing.T) {
	form := sampleForm()
	found := form.Query("[name]")
	if found.Count() != 2 {
		t.Fatalf("Query([name]) count = %d, want 2", found.Count())
	}
	if found.At(0) != form {
		t.Errorf("first result should be the root itself")
	}
}

func TestQueryKeepsDuplicates(t *testing.T) {
	inner := Div(ID("3"))
	middle := Div(ID("2"), inner)
	outer := Div(ID("1"), middle)

	found := outer.Query("div div")
	var ids []string
	found.Each(func(n *Node) { ids = append(ids, n.ID()) })
	if got := strings.Join(ids, ","); got != "2,3,3" {
		t.Errorf("Query(div div) = %s, want 2,3,3", got)
	}

	if got := outer.First("div div").First(); got != middle {
		t.Errorf("First(div div) = %v, want middle", got)
	}
}

func TestQueryTerminalTerms(t *testing.T) {
	page := sampleLoginPage()

	// a predicate or wildcard term reports the node and keeps searching
	// descendants with the same sequence
	if got := page.QuerySeq(Sequence{{Tag: "form"}, PredicateSelector(isLabel)}).Count(); got != 2 {
		t.Errorf("form <label predicate> count = %d, want 2", got)
	}
	if got := page.Query("form *").Count(); got != 9 {
		t.Errorf("Query(form *) count = %d, want 9", got)
	}
}

func TestFirstConsumesWildcard(t *testing.T) {
	span := Span("x")
	tree := Div(span)

	// Query treats "*" as terminal, so every node is reported
	if got := tree.Query("* span").Count(); got != 2 {
		t.Errorf("Query(* span) count = %d, want 2", got)
	}
	// First consumes it like any other term
	if got := tree.First("* span").First(); got != span {
		t.Errorf("First(* span) = %v, want span", got)
	}
}

func TestQueryAcrossNodeSet(t *testing.T) {
	a := Div(Span("1"), Span("2"))
	b := Div(Span("3"))

	set := NodeSet{a, nil, b}
	if got := set.Query("span").Count(); got != 3 {
		t.Errorf("Query(span) count = %d, want 3", got)
	}
	if got := set.FirstOf("span").First(); got.Children()[0] != "1" {
		t.Errorf("FirstOf(span) = %v", got)
	}
	if got := (NodeSet{b, a}).FirstOf("span").First(); got.Children()[0] != "3" {
		t.Errorf("FirstOf(span) = %v", got)
	}
	if got := set.QueryFunc(func(n *Node) bool { return n.Tag() == "div" }).Count(); got != 2 {
		t.Errorf("QueryFunc(div) count = %d, want 2", got)
	}
}

func TestNodeSetBatch(t *testing.T) {
	page := sampleLoginPage()

	page.Query("input[required]").AddClass("needed").SetAttribute("autocomplete", "off")
	if got := page.Query("input.needed[autocomplete=off]").Count(); got != 2 {
		t.Errorf("batch update count = %d, want 2", got)
	}

	page.Query(".needed").RemoveClass("needed")
	if got := page.Query(".needed").Count(); got != 0 {
		t.Errorf("RemoveClass left %d nodes", got)
	}

	page.Query("label").Detach()
	if got := page.Query("label").Count(); got != 0 {
		t.Errorf("Detach left %d labels", got)
	}
	if !strings.Contains(page.String(), `<div class="form-row"><input id="field-login"`) {
		t.Errorf("unexpected markup after detach: %s", page)
	}
}

func TestNodeSetAccessors(t *testing.T) {
	set := sampleLoginPage().Query("input")
	if set.At(-1) != nil || set.At(3) != nil {
		t.Errorf("At() out of range returned a node")
	}
	if set.First().AttributeString("name") != "login" || set.Last().AttributeString("name") != "op" {
		t.Errorf("First/Last returned wrong nodes")
	}
	if set.AttributeString("id") != "field-login" {
		t.Errorf("AttributeString(id) = %q", set.AttributeString("id"))
	}
}

func TestCompiledSequenceReuse(t *testing.T) {
	seq := MustCompile("div.form-row input")
	page := sampleLoginPage()
	for i := 0; i < 3; i++ {
		if got := page.QuerySeq(seq).Count(); got != 2 {
			t.Fatalf("QuerySeq count = %d, want 2", got)
		}
	}
	if got := page.FirstSeq(seq).AttributeString("name"); got != "login" {
		t.Errorf("FirstSeq name = %q, want login", got)
	}
}

func TestQueryDeepTree(t *testing.T) {
	const depth = 50000
	cur := Span(ID("leaf"))
	for i := 0; i < depth; i++ {
		cur = Div(cur)
	}

	if got := cur.Query("span").Count(); got != 1 {
		t.Errorf("Query(span) count = %d, want 1", got)
	}
	if got := cur.First("#leaf").Count(); got != 1 {
		t.Errorf("First(#leaf) count = %d, want 1", got)
	}
}
