package lints

import (
	"sort"

	tt "github.com/gnolang/hlin/internal/types"
)

// Rule names reported in Issue.Rule.
const (
	MissingDoctype       = "missing-doctype"
	VoidClosingTag       = "void-closing-tag"
	UnexpectedClosingTag = "unexpected-closing-tag"
	UnmatchedClosingTag  = "unmatched-closing-tag"
	UnclosedTag          = "unclosed-tag"
	UnmatchedQuote       = "unmatched-quote"
	DuplicateID          = "duplicate-id"
	UnknownElement       = "unknown-element"
)

// DefaultSeverities holds the severity of every known rule when no
// configuration overrides it.
var DefaultSeverities = map[string]tt.Severity{
	MissingDoctype:       tt.SeverityWarning,
	VoidClosingTag:       tt.SeverityError,
	UnexpectedClosingTag: tt.SeverityError,
	UnmatchedClosingTag:  tt.SeverityError,
	UnclosedTag:          tt.SeverityError,
	UnmatchedQuote:       tt.SeverityError,
	DuplicateID:          tt.SeverityWarning,
	UnknownElement:       tt.SeverityOff,
}

// RuleNames returns every known rule name, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(DefaultSeverities))
	for name := range DefaultSeverities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pass is one scan over an analyzed document. A pass may report several rules.
type Pass struct {
	Name  string
	Rules []string
	Check func(doc *Document) []tt.Issue
}

// Passes lists every pass in the order their findings are concatenated.
var Passes = []Pass{
	{Name: "doctype", Rules: []string{MissingDoctype}, Check: CheckDoctype},
	{
		Name: "structure",
		Rules: []string{
			VoidClosingTag,
			UnexpectedClosingTag,
			UnmatchedClosingTag,
			UnclosedTag,
			UnmatchedQuote,
		},
		Check: CheckStructure,
	},
	{Name: "duplicate-id", Rules: []string{DuplicateID}, Check: CheckDuplicateIDs},
	{Name: "elements", Rules: []string{UnknownElement}, Check: CheckUnknownElements},
}

func newIssue(rule string, line int, message string) tt.Issue {
	return tt.Issue{
		Rule:     rule,
		Line:     line,
		Column:   1,
		Message:  message,
		Severity: DefaultSeverities[rule],
	}
}

// SortIssues orders issues by line then column, keeping discovery order
// for issues at the same position.
func SortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})
}
