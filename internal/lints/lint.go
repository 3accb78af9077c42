package lints

import tt "github.com/gnolang/hlin/internal/types"

// LintHTML runs every rule that is enabled by default over html and returns
// the findings ordered by position. It never fails; an empty or malformed
// document simply yields the issues it triggers.
func LintHTML(html string) []tt.Issue {
	doc := Analyze(html)
	issues := []tt.Issue{}
	for _, p := range Passes {
		if !enabledByDefault(p) {
			continue
		}
		for _, issue := range p.Check(doc) {
			if issue.Severity != tt.SeverityOff {
				issues = append(issues, issue)
			}
		}
	}
	SortIssues(issues)
	return issues
}

func enabledByDefault(p Pass) bool {
	for _, rule := range p.Rules {
		if DefaultSeverities[rule] != tt.SeverityOff {
			return true
		}
	}
	return false
}
