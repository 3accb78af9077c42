package lints

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	tt "github.com/gnolang/hlin/internal/types"
)

// CheckUnknownElements warns about opening tags that are neither standard
// HTML elements nor custom (hyphenated) or namespaced elements.
// Each unknown name is reported once, at its first occurrence.
func CheckUnknownElements(doc *Document) []tt.Issue {
	var issues []tt.Issue
	reported := make(map[string]bool)
	for _, tok := range doc.tokens {
		if tok.Closing || reported[tok.Name] || isKnownElement(tok.Name) {
			continue
		}
		reported[tok.Name] = true
		issues = append(issues, newIssue(UnknownElement, tok.Line,
			fmt.Sprintf("Unknown element <%s>", tok.Name)))
	}
	return issues
}

func isKnownElement(name string) bool {
	if strings.ContainsAny(name, "-:") {
		return true
	}
	return atom.Lookup([]byte(name)) != 0
}
