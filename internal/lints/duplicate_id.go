package lints

import (
	"fmt"
	"regexp"

	tt "github.com/gnolang/hlin/internal/types"
)

// The value may contain its own quote character when escaped with a backslash.
var idAttrPattern = regexp.MustCompile(`(?i)id\s*=\s*(?:"((?:\\"|[^"\n])*)"|'((?:\\'|[^'\n])*)')`)

// CheckDuplicateIDs reports every occurrence of an id value that appears
// more than once. It scans the unmasked source, so ids inside comments,
// scripts and styles count too.
func CheckDuplicateIDs(doc *Document) []tt.Issue {
	var (
		order []string
		seen  = make(map[string][]int)
	)

	for _, m := range idAttrPattern.FindAllStringSubmatchIndex(doc.Source, -1) {
		var value string
		switch {
		case m[2] >= 0:
			value = doc.Source[m[2]:m[3]]
		case m[4] >= 0:
			value = doc.Source[m[4]:m[5]]
		}
		if _, ok := seen[value]; !ok {
			order = append(order, value)
		}
		seen[value] = append(seen[value], doc.LineAt(m[0]))
	}

	var issues []tt.Issue
	for _, value := range order {
		lines := seen[value]
		if len(lines) < 2 {
			continue
		}
		for _, line := range lines {
			issues = append(issues, newIssue(DuplicateID, line,
				fmt.Sprintf(`Duplicate id="%s"`, value)))
		}
	}
	return issues
}
