package lints

import "regexp"

// maskPattern describes a construct whose content must not be scanned for
// tags. group selects the submatch to blank; 0 blanks the whole match.
type maskPattern struct {
	re    *regexp.Regexp
	group int
}

// Applied in order: comments first, so that script or style markup inside
// a comment is already gone when the later patterns run.
var maskPatterns = []maskPattern{
	{re: regexp.MustCompile(`(?s)<!--.*?-->`), group: 0},
	{re: regexp.MustCompile(`(?is)<script\b[^>]*>(.*?)</script\s*>`), group: 1},
	{re: regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style\s*>`), group: 1},
}

// maskRawText returns a copy of text where comments and the contents of
// script and style elements are replaced byte for byte with spaces.
// The result always has the same length as text.
func maskRawText(text string) string {
	buf := []byte(text)
	for _, p := range maskPatterns {
		for _, loc := range p.re.FindAllSubmatchIndex(buf, -1) {
			start, end := loc[2*p.group], loc[2*p.group+1]
			if start < 0 {
				continue
			}
			blank(buf[start:end])
		}
	}
	return string(buf)
}

func blank(b []byte) {
	for i := range b {
		b[i] = ' '
	}
}
