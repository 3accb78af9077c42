package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/gnolang/hlin/internal"
	tt "github.com/gnolang/hlin/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgHiYellow)
)

const issueTemplate = `{{header .Rule .Severity .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLines .Line .MaxLineNumWidth .Padding -}}
{{underlineAndMessage .Message .Severity .Padding .Line .SnippetLines}}
`

var issueTmpl = template.Must(template.New("issue").Funcs(template.FuncMap{
	"header":              header,
	"snippet":             codeSnippet,
	"underlineAndMessage": underlineAndMessage,
}).Parse(issueTemplate))

// GenerateFormattedIssue formats a slice of issues of one file into a
// human-readable string.
func GenerateFormattedIssue(issues []tt.Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(buildIssue(issue, snippet))
	}
	return builder.String()
}

/***** Issue Formatter Builder *****/

type IssueData struct {
	Severity        string
	Rule            string
	Filename        string
	Padding         string
	Line            int
	Column          int
	MaxLineNumWidth int
	Message         string
	SnippetLines    []string
}

func buildIssue(issue tt.Issue, snippet *internal.SourceCode) string {
	maxLineNumWidth := calculateMaxLineNumWidth(issue.Line)

	var lines []string
	if snippet != nil {
		lines = snippet.Lines
	}

	data := IssueData{
		Severity:        issue.Severity.String(),
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		Line:            issue.Line,
		Column:          issue.Column,
		Message:         issue.Message,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
		SnippetLines:    lines,
	}

	var buf bytes.Buffer
	if err := issueTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, severity string, maxLineNumWidth int, filename string, line int, column int) string {
	var endString string
	switch severity {
	case "ERROR":
		endString = errorStyle.Sprint("error: ")
	case "WARNING":
		endString = warningStyle.Sprint("warning: ")
	}

	endString += ruleStyle.Sprintf("%s\n", rule)

	if filename == "" {
		filename = "<input>"
	}
	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d\n", filename, line, column)

	return endString
}

func codeSnippet(snippetLines []string, line int, maxLineNumWidth int, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)
	if !isValidLine(line, snippetLines) {
		return endString
	}

	text := strings.TrimLeftFunc(snippetLines[line-1], unicode.IsSpace)
	lineNum := fmt.Sprintf("%*d", maxLineNumWidth, line)
	endString += lineStyle.Sprintf("%s | ", lineNum) + expandTabs(text) + "\n"

	return endString
}

func underlineAndMessage(message string, severity string, padding string, line int, snippetLines []string) string {
	style := messageStyle
	if severity == "WARNING" {
		style = noteStyle
	}

	endString := lineStyle.Sprintf("%s| ", padding)
	if !isValidLine(line, snippetLines) {
		endString += style.Sprintf("%s\n", message)
		return endString
	}

	text := expandTabs(strings.TrimSpace(snippetLines[line-1]))
	underlineLength := utf8.RuneCountInString(text)
	if underlineLength < 1 {
		underlineLength = 1
	}
	endString += style.Sprintf("%s\n", strings.Repeat("~", underlineLength))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += style.Sprintf("%s\n", message)

	return endString
}

func isValidLine(line int, snippetLines []string) bool {
	return line > 0 && line <= len(snippetLines)
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}

// expandTabs replaces tab characters with spaces, considering a tab width of 8
func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (column % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
			column += spaceCount
		} else {
			expanded.WriteRune(ch)
			column++
		}
	}
	return expanded.String()
}
