package mtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"paragraph", "Hello", "<p>Hello</p>"},
		{"bold", "**Hi**", "<p><strong>Hi</strong></p>"},
		{"strikethrough", "~~gone~~", "<p><del>gone</del></p>"},
		{"two paragraphs", "a\n\nb", "<p>a</p><p>b</p>"},
		{"hard wrap", "a\nb", "<p>a<br>b</p>"},
		{"list", "- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MarkdownToHTML([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bold", "**Hi**", `\pql;{\fArial|b1|i0;Hi}\P`},
		{"italic", "*Hi*", `\pql;{\fArial|b0|i1;Hi}\P`},
		{"ordered list", "1. one\n2. two", `\P1. one\P2. two`},
		{"line break", "a\nb", `\pql;a\Pb\P`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseMarkdown([]byte(tt.input), ParseOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Serialize(result.Nodes))
		})
	}
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"paragraph", "<p>Hello world</p>", "Hello world"},
		{"bold", "<p>This is <strong>bold</strong> text</p>", "This is **bold** text"},
		{"unordered list", "<ul><li>Item 1</li><li>Item 2</li></ul>", "- Item 1\n- Item 2"},
		{"ordered list", "<ol><li>First</li><li>Second</li></ol>", "1. First\n2. Second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToMarkdown(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}
