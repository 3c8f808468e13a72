package config

import (
	"slices"
	"strings"
)

// Config holds configuration options for rendering a node tree
type Config struct {
	// SingleTags are rendered without a closing tag when they have no children
	SingleTags []string

	// VoidAttributes are rendered by name only (e.g. required) when truthy
	VoidAttributes []string

	// SelfCloseSlash renders single tags as <br /> instead of <br>
	SelfCloseSlash bool

	// EscapeText escapes text children unless the element is marked _raw
	EscapeText bool
}

// Default returns the configuration used by Node.Render
func Default() Config {
	return Config{
		SingleTags: []string{
			"hr", "img", "meta", "link", "base", "br", "input", "itemscope",
		},
		VoidAttributes: []string{
			"readonly", "disabled", "checked", "selected", "required",
			"autofocus", "novalidate", "formnovalidate", "async",
		},
		SelfCloseSlash: false, // HTML5 style
		EscapeText:     true,
	}
}

// IsSingleTag reports whether tag is closed immediately. Case-insensitive.
func (c Config) IsSingleTag(tag string) bool {
	return slices.Contains(c.SingleTags, strings.ToLower(tag))
}

// IsVoidAttribute reports whether the attribute is rendered by name only
func (c Config) IsVoidAttribute(name string) bool {
	return slices.Contains(c.VoidAttributes, name)
}
