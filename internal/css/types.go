package css

import (
	"fmt"
	"strings"
)

// Declaration represents a single CSS property declaration
type Declaration struct {
	Property  string // CSS property name (normalized)
	Value     string // CSS property value
	Important bool   // !important flag
}

func (d Declaration) String() string {
	value := d.Value
	if d.Important {
		value += " !important"
	}
	return fmt.Sprintf("%s: %s;", d.Property, value)
}

// FormatDeclarations renders declarations the way a style attribute expects them:
// "display: block; width: 100%;"
func FormatDeclarations(declarations []Declaration) string {
	parts := make([]string, 0, len(declarations))
	for _, declaration := range declarations {
		parts = append(parts, declaration.String())
	}
	return strings.Join(parts, " ")
}
