package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLineIndex(t *testing.T) {
	t.Parallel()
	idx := newLineIndex("ab\nc\n\nd")

	assert.Equal(t, lineIndex{1, 1, 1, 2, 2, 3, 4}, idx)
}

func TestLineIndex_LineAt(t *testing.T) {
	t.Parallel()
	idx := newLineIndex("a\nb\n")

	assert.Equal(t, 1, idx.lineAt(0))
	assert.Equal(t, 1, idx.lineAt(1))
	assert.Equal(t, 2, idx.lineAt(2))
	assert.Equal(t, 2, idx.lineAt(100), "offset past the end is clamped")
	assert.Equal(t, 1, idx.lineAt(-3))
	assert.Equal(t, 1, newLineIndex("").lineAt(5))
}
