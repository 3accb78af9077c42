package nolint

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/gnolang/hlin/internal/lints"
)

const nolintPrefix = "nolint"

var commentPattern = regexp.MustCompile(`(?s)<!--(.*?)-->`)

// Manager manages nolint scopes and checks if a line is nolinted.
type Manager struct {
	scopes []nolintScope
}

// nolintScope represents a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseComments collects the nolint comments of an analyzed document.
//
//	<!-- nolint -->              every rule
//	<!-- nolint:rule1,rule2 -->  only the listed rules
//
// A comment placed before the first tag applies to the whole document, a
// comment sharing a line with markup applies to that line, and a comment
// alone on its line applies up to the next non-blank line.
func ParseComments(doc *lints.Document) *Manager {
	manager := &Manager{}
	lines := strings.Split(doc.Source, "\n")
	firstTag := doc.FirstTagOffset()

	for _, loc := range commentPattern.FindAllStringSubmatchIndex(doc.Source, -1) {
		rules, err := parseComment(doc.Source[loc[2]:loc[3]])
		if err != nil {
			// ignore comments that are not nolint directives
			continue
		}

		ns := nolintScope{rules: rules}
		startLine := doc.LineAt(loc[0])
		endLine := doc.LineAt(loc[1] - 1)

		switch {
		case firstTag < 0 || loc[0] < firstTag:
			ns.start, ns.end = 1, math.MaxInt
		case isInlineComment(doc.Source, loc[0], loc[1]):
			ns.start, ns.end = startLine, endLine
		default:
			ns.start, ns.end = startLine, nextContentLine(lines, endLine)
		}
		manager.scopes = append(manager.scopes, ns)
	}
	return manager
}

// parseComment parses the text between <!-- and -->.
func parseComment(text string) (map[string]struct{}, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, nolintPrefix) {
		return nil, fmt.Errorf("invalid nolint comment")
	}

	rest := text[len(nolintPrefix):]

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return nil, fmt.Errorf("invalid nolint comment format")
	}

	if len(rest) > 0 && rest[0] == ':' {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return nil, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	return parseIgnoreRuleNames(rest), nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	rules := strings.Split(text, ",")
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// isInlineComment reports whether the comment at [start, end) shares its
// first or last line with other content.
func isInlineComment(src string, start, end int) bool {
	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	if strings.TrimSpace(src[lineStart:start]) != "" {
		return true
	}
	lineEnd := len(src)
	if i := strings.IndexByte(src[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	return strings.TrimSpace(src[end:lineEnd]) != ""
}

// nextContentLine returns the first non-blank line after line, or line
// itself when nothing follows.
func nextContentLine(lines []string, line int) int {
	for i := line; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i + 1
		}
	}
	return line
}

// IsNolint checks if a given line and rule are nolinted.
func (m *Manager) IsNolint(line int, ruleName string) bool {
	if m == nil {
		return false
	}
	for _, ns := range m.scopes {
		if line < ns.start || line > ns.end {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
