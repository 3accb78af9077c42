package lints

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskRawText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "comment",
			input:    "a<!-- <b> -->c",
			expected: "a            c",
		},
		{
			name:     "script content keeps its tags",
			input:    "<script>x<y</script>",
			expected: "<script>   </script>",
		},
		{
			name:     "style is case insensitive",
			input:    "<STYLE type=\"text/css\">a>b</Style>",
			expected: "<STYLE type=\"text/css\">   </Style>",
		},
		{
			name:     "non greedy",
			input:    "<!--a--><p><!--b-->",
			expected: "        <p>        ",
		},
		{
			name:     "unterminated comment is left alone",
			input:    "<!-- <div>",
			expected: "<!-- <div>",
		},
		{
			name:     "script inside comment",
			input:    "<!-- <script> --><i>",
			expected: "                 <i>",
		},
		{
			name:     "newlines are masked too",
			input:    "<!--\n-->x",
			expected: "        x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskRawText(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Len(t, got, len(tt.input))
		})
	}
}

func TestMaskRawText_PreservesLength(t *testing.T) {
	t.Parallel()
	input := "<p>é</p><!-- ünïcödé --><script>let s = '✓';</script>" + strings.Repeat("<!--x-->", 10)

	assert.Len(t, maskRawText(input), len(input))
}
