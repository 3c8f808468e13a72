package htmltree

import (
	"fmt"
	"io"
	"strings"

	"htmltree/internal/config"

	"github.com/spf13/cast"
	"golang.org/x/net/html"
	g "maragu.dev/gomponents"
)

// Renderer writes node trees as HTML text.
type Renderer struct {
	cfg config.Config
}

var defaultRenderer = NewRenderer(config.Default())

// NewRenderer creates a renderer with the given configuration
func NewRenderer(cfg config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render writes n to w.
func (r *Renderer) Render(w io.Writer, n *Node) error {
	var b strings.Builder
	if err := r.renderNode(&b, n); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderString renders n to a string. Errors from embedded gomponents nodes
// are written nowhere; use Render to observe them.
func (r *Renderer) RenderString(n *Node) string {
	var b strings.Builder
	_ = r.renderNode(&b, n)
	return b.String()
}

// Render implements gomponents.Node with the default configuration.
func (n *Node) Render(w io.Writer) error {
	return defaultRenderer.Render(w, n)
}

// String renders the node with the default configuration.
func (n *Node) String() string {
	return defaultRenderer.RenderString(n)
}

// Visible reports whether n is rendered at all once its _hideempty and _if
// attributes are applied.
func (r *Renderer) Visible(n *Node) bool {
	if truthy(n.attrOrNil(HideEmptyAttr)) && n.isEmpty(r.cfg) {
		return false
	}
	return !n.HasAttribute(IfAttr) || n.guard()
}

func (r *Renderer) renderNode(b *strings.Builder, n *Node) error {
	if !r.Visible(n) {
		return nil
	}

	single := r.cfg.IsSingleTag(n.tag) && len(n.children) == 0
	if n.tag != "" {
		b.WriteString("<")
		b.WriteString(n.tag)
		if attrs := r.renderAttributes(n); attrs != "" {
			b.WriteString(" ")
			b.WriteString(attrs)
		}
		if single && r.cfg.SelfCloseSlash {
			b.WriteString(" /")
		}
		b.WriteString(">")
	}
	if single {
		return nil
	}

	if err := r.renderItems(b, n); err != nil {
		return err
	}

	if n.tag != "" {
		fmt.Fprintf(b, "</%s>", n.tag)
	}
	return nil
}

// resolve evaluates a computed attribute value against n.
func (n *Node) resolve(v any) any {
	if fn, ok := v.(func(*Node) any); ok {
		return fn(n)
	}
	return v
}

func (n *Node) attrOrNil(name string) any {
	v, _ := n.Attribute(name)
	return v
}

// RawText reports whether text children are written without escaping.
func (n *Node) RawText() bool {
	return truthy(n.attrOrNil(RawAttr))
}

func (n *Node) guard() bool {
	switch cond := n.attrOrNil(IfAttr).(type) {
	case func(*Node) bool:
		return cond(n)
	case func() bool:
		return cond()
	default:
		return truthy(cond)
	}
}

func (r *Renderer) renderItems(b *strings.Builder, n *Node) error {
	raw := n.RawText()
	for i, item := range n.children {
		if i > 0 {
			b.WriteString(n.separator)
		}
		if lazy, ok := item.(Lazy); ok {
			item = lazy()
		}
		if err := r.renderItem(b, item, raw); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderItem(b *strings.Builder, item any, raw bool) error {
	switch v := item.(type) {
	case nil:
		return nil
	case string:
		r.writeText(b, v, raw)
	case *Node:
		return r.renderNode(b, v)
	case g.Node:
		if err := v.Render(b); err != nil {
			return fmt.Errorf("failed to render embedded node: %w", err)
		}
	case fmt.Stringer:
		r.writeText(b, v.String(), raw)
	default:
		r.writeText(b, cast.ToString(v), raw)
	}
	return nil
}

func (r *Renderer) writeText(b *strings.Builder, text string, raw bool) {
	if raw || !r.cfg.EscapeText {
		b.WriteString(text)
		return
	}
	b.WriteString(html.EscapeString(text))
}

// RenderedAttr is an attribute as it appears in markup. Flag attributes are
// written by name only.
type RenderedAttr struct {
	Name  string
	Value string
	Flag  bool
}

// Attributes returns the visible attributes of n in order, with flags
// resolved and computed values evaluated.
func (r *Renderer) Attributes(n *Node) []RenderedAttr {
	var attrs []RenderedAttr

	n.EachAttribute(func(name string, value Value) {
		if isHidden(name) {
			return
		}

		s, ok := value.(Scalar)
		if !ok {
			// ClassList and StyleMap are rendered even when empty
			attrs = append(attrs, RenderedAttr{Name: name, Value: value.Text()})
			return
		}

		v := n.resolve(s.V)

		if r.cfg.IsVoidAttribute(name) || v == true {
			if truthy(v) {
				attrs = append(attrs, RenderedAttr{Name: name, Flag: true})
			}
			return
		}

		text := cast.ToString(v)
		if list, ok := v.([]string); ok {
			text = strings.Join(list, " ")
		}
		attrs = append(attrs, RenderedAttr{Name: name, Value: text})
	})

	return attrs
}

// renderAttributes makes a string like `id="id1" class="class1 class2" readonly`
func (r *Renderer) renderAttributes(n *Node) string {
	attrs := r.Attributes(n)
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		if a.Flag {
			parts[i] = a.Name
			continue
		}
		parts[i] = fmt.Sprintf(`%s="%s"`, a.Name, html.EscapeString(a.Value))
	}
	return strings.Join(parts, " ")
}
