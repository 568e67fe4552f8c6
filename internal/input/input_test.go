package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mtext-cli/pkg/mtext"
)

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.html")
	require.NoError(t, os.WriteFile(path, []byte("<b>Hi</b>"), 0644))

	content, err := Read(Source{File: path, Stdin: strings.NewReader("ignored")})
	require.NoError(t, err)
	assert.Equal(t, "<b>Hi</b>", content)
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := Read(Source{File: "/nonexistent/in.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestRead_Stdin(t *testing.T) {
	content, err := Read(Source{Stdin: strings.NewReader("<i>x</i>")})
	require.NoError(t, err)
	assert.Equal(t, "<i>x</i>", content)
}

func TestRead_DashMeansStdin(t *testing.T) {
	content, err := Read(Source{File: "-", Stdin: strings.NewReader("abc")})
	require.NoError(t, err)
	assert.Equal(t, "abc", content)
}

func TestRead_EmptyContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t\n   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(Source{Stdin: strings.NewReader(tt.input)})
			require.ErrorIs(t, err, ErrEmpty)
		})
	}
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	t.Setenv("VISUAL", "code")
	assert.Equal(t, "nano", editorCommand())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "code", editorCommand())

	t.Setenv("VISUAL", "")
	assert.Equal(t, "vi", editorCommand())
}

func TestParse(t *testing.T) {
	t.Run("html", func(t *testing.T) {
		result, err := Parse(Source{Stdin: strings.NewReader("<b>x</b>")}, false, mtext.ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, `{\fArial|b1|i0;x}`, mtext.Serialize(result.Nodes))
	})

	t.Run("markdown", func(t *testing.T) {
		result, err := Parse(Source{Stdin: strings.NewReader("*x*")}, true, mtext.ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, `\pql;{\fArial|b0|i1;x}\P`, mtext.Serialize(result.Nodes))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse(Source{Stdin: strings.NewReader("")}, false, mtext.ParseOptions{})
		require.ErrorIs(t, err, ErrEmpty)
	})
}
