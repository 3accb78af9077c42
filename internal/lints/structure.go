package lints

import (
	"fmt"
	"strings"

	tt "github.com/gnolang/hlin/internal/types"
)

type stackFrame struct {
	name string
	line int
}

// CheckStructure matches opening and closing tags with a stack of open
// elements.
//
// A closing tag that does not match the top of the stack closes the nearest
// open element of the same name, and every element opened after it is
// reported as unclosed. A closing tag with no open counterpart leaves the
// stack untouched.
func CheckStructure(doc *Document) []tt.Issue {
	var (
		issues []tt.Issue
		stack  []stackFrame
	)

	for _, tok := range doc.tokens {
		switch {
		case tok.Closing && voidElements[tok.Name]:
			issues = append(issues, newIssue(VoidClosingTag, tok.Line,
				fmt.Sprintf("Void element <%s> must not have a closing tag", tok.Name)))

		case tok.Closing:
			issues, stack = closeElement(issues, stack, tok)

		case !tok.SelfClosing:
			stack = append(stack, stackFrame{name: tok.Name, line: tok.Line})
		}

		if hasUnmatchedQuote(tok.Attrs) {
			issues = append(issues, newIssue(UnmatchedQuote, tok.Line,
				fmt.Sprintf("Unmatched quote in attributes of <%s>", tok.Name)))
		}
	}

	for _, frame := range stack {
		if voidElements[frame.name] {
			continue
		}
		issues = append(issues, newIssue(UnclosedTag, frame.line,
			fmt.Sprintf("Unclosed <%s> tag", frame.name)))
	}

	return issues
}

func closeElement(issues []tt.Issue, stack []stackFrame, tok tagToken) ([]tt.Issue, []stackFrame) {
	if len(stack) == 0 {
		issues = append(issues, newIssue(UnexpectedClosingTag, tok.Line,
			fmt.Sprintf("Unexpected closing </%s>", tok.Name)))
		return issues, stack
	}

	top := len(stack) - 1
	if stack[top].name == tok.Name {
		return issues, stack[:top]
	}

	match := -1
	for i := top; i >= 0; i-- {
		if stack[i].name == tok.Name {
			match = i
			break
		}
	}
	if match < 0 {
		issues = append(issues, newIssue(UnmatchedClosingTag, tok.Line,
			fmt.Sprintf("Closing </%s> does not match any open tag", tok.Name)))
		return issues, stack
	}

	for _, frame := range stack[match+1:] {
		issues = append(issues, newIssue(UnclosedTag, frame.line,
			fmt.Sprintf("Unclosed <%s> before </%s>", frame.name, tok.Name)))
	}
	return issues, stack[:match]
}

// hasUnmatchedQuote reports an odd number of unescaped double quotes or an
// odd number of single quotes in a raw attribute string.
func hasUnmatchedQuote(attrs string) bool {
	double := strings.Count(attrs, `"`) - strings.Count(attrs, `\"`)
	single := strings.Count(attrs, `'`)
	return double%2 != 0 || single%2 != 0
}
