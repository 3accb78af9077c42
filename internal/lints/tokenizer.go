package lints

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<\s*(/)?\s*([a-zA-Z][a-zA-Z0-9:-]*)\b([^>]*)>`)

// voidElements never have content or a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement reports whether name (lowercase) is an HTML void element.
func IsVoidElement(name string) bool {
	return voidElements[name]
}

// tagToken is a single opening or closing tag found in the masked text.
type tagToken struct {
	Closing     bool
	Name        string
	Attrs       string
	Offset      int
	Line        int
	SelfClosing bool
}

// tokenizeTags scans masked for tags in document order. Offsets and lines
// refer to the original document since masking preserves length.
func tokenizeTags(masked string, lines lineIndex) []tagToken {
	matches := tagPattern.FindAllStringSubmatchIndex(masked, -1)
	tokens := make([]tagToken, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(masked[m[4]:m[5]])
		attrs := masked[m[6]:m[7]]
		tokens = append(tokens, tagToken{
			Closing:     m[2] >= 0,
			Name:        name,
			Attrs:       attrs,
			Offset:      m[0],
			Line:        lines.lineAt(m[0]),
			SelfClosing: strings.HasSuffix(strings.TrimSpace(attrs), "/") || voidElements[name],
		})
	}
	return tokens
}
