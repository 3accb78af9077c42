package lints

// lineIndex maps every byte offset of a document to its 1-based line.
// The newline byte belongs to the line it terminates.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	idx := make(lineIndex, len(text))
	line := 1
	for i := 0; i < len(text); i++ {
		idx[i] = line
		if text[i] == '\n' {
			line++
		}
	}
	return idx
}

// lineAt returns the line containing offset. Offsets past the end are
// clamped to the last byte; an empty document reports line 1.
func (idx lineIndex) lineAt(offset int) int {
	if len(idx) == 0 {
		return 1
	}
	if offset >= len(idx) {
		offset = len(idx) - 1
	}
	if offset < 0 {
		offset = 0
	}
	return idx[offset]
}
