package lints

import (
	"regexp"
	"strings"

	tt "github.com/gnolang/hlin/internal/types"
)

var doctypePattern = regexp.MustCompile(`(?i)^<!DOCTYPE\s+html>`)

// CheckDoctype requires the first non-blank line to be <!DOCTYPE html>.
func CheckDoctype(doc *Document) []tt.Issue {
	line := 1
	first := ""
	for i, l := range strings.Split(doc.Source, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			line = i + 1
			first = t
			break
		}
	}

	if doctypePattern.MatchString(first) {
		return nil
	}
	return []tt.Issue{
		newIssue(MissingDoctype, line, "Missing or invalid <!DOCTYPE html> declaration"),
	}
}
