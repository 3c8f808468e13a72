package css

import (
	"regexp"
	"strings"
)

// Parser handles parsing of inline style declarations
type Parser struct {
	importantRegex *regexp.Regexp
}

// NewParser creates a new CSS declaration parser
func NewParser() *Parser {
	return &Parser{
		importantRegex: regexp.MustCompile(`!\s*important\s*$`),
	}
}

// ParseInlineStyle parses a style attribute ("display: block; width: 100%")
// into declarations in source order. A property declared twice keeps its
// first position and the last value.
func (p *Parser) ParseInlineStyle(styleAttr string) []Declaration {
	var declarations []Declaration
	index := make(map[string]int)

	// Split by semicolon, but handle semicolons in quoted strings
	for _, part := range p.smartSplit(styleAttr, ';') {
		declaration, ok := p.ParseDeclaration(part)
		if !ok {
			continue
		}

		if i, exists := index[declaration.Property]; exists {
			declarations[i] = declaration
			continue
		}
		index[declaration.Property] = len(declarations)
		declarations = append(declarations, declaration)
	}

	return declarations
}

// ParseDeclaration parses a single "property: value" pair. A trailing
// semicolon is ignored.
func (p *Parser) ParseDeclaration(text string) (Declaration, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	if text == "" {
		return Declaration{}, false
	}

	// Find the first colon that's not in a quoted string
	colonIndex := p.findUnquotedChar(text, ':')
	if colonIndex == -1 {
		return Declaration{}, false
	}

	return p.NewDeclaration(text[:colonIndex], text[colonIndex+1:])
}

// NewDeclaration builds a declaration from a property and a raw value,
// extracting the !important flag.
func (p *Parser) NewDeclaration(property, value string) (Declaration, bool) {
	property = NormalizePropertyName(property)
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(strings.TrimSuffix(value, ";"))

	if property == "" || value == "" {
		return Declaration{}, false
	}

	important := p.importantRegex.MatchString(value)
	if important {
		value = strings.TrimSpace(p.importantRegex.ReplaceAllString(value, ""))
	}

	return Declaration{
		Property:  property,
		Value:     value,
		Important: important,
	}, true
}

// smartSplit splits a string by delimiter, respecting quoted strings
func (p *Parser) smartSplit(s string, delimiter rune) []string {
	var parts []string
	var current strings.Builder
	var inQuotes bool
	var quoteChar rune

	for _, char := range s {
		switch {
		case !inQuotes && (char == '"' || char == '\''):
			inQuotes = true
			quoteChar = char
			current.WriteRune(char)
		case inQuotes && char == quoteChar:
			inQuotes = false
			current.WriteRune(char)
		case !inQuotes && char == delimiter:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// findUnquotedChar finds the first occurrence of char that's not in quotes
func (p *Parser) findUnquotedChar(s string, char rune) int {
	var inQuotes bool
	var quoteChar rune

	for i, c := range s {
		switch {
		case !inQuotes && (c == '"' || c == '\''):
			inQuotes = true
			quoteChar = c
		case inQuotes && c == quoteChar:
			inQuotes = false
		case !inQuotes && c == char:
			return i
		}
	}

	return -1
}

// NormalizePropertyName normalizes CSS property names
func NormalizePropertyName(property string) string {
	return strings.ToLower(strings.TrimSpace(property))
}
