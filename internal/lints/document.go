package lints

// Document is an HTML source prepared once and shared read-only by
// every pass.
type Document struct {
	Source string

	masked string
	lines  lineIndex
	tokens []tagToken
}

// Analyze builds the line index, the masked copy and the tag stream of source.
func Analyze(source string) *Document {
	lines := newLineIndex(source)
	masked := maskRawText(source)
	return &Document{
		Source: source,
		masked: masked,
		lines:  lines,
		tokens: tokenizeTags(masked, lines),
	}
}

// LineAt returns the 1-based line of a byte offset in Source.
func (d *Document) LineAt(offset int) int {
	return d.lines.lineAt(offset)
}

// FirstTagOffset returns the offset of the first tag outside comments and
// raw text, or -1 when the document has none.
func (d *Document) FirstTagOffset() int {
	if len(d.tokens) == 0 {
		return -1
	}
	return d.tokens[0].Offset
}
