// Package input reads markup for mtx commands from a file, a pipe or an editor.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/open-cli-collective/mtext-cli/internal/log"
	"github.com/open-cli-collective/mtext-cli/pkg/mtext"
)

// ErrEmpty is returned when no content was provided.
var ErrEmpty = errors.New("no content provided")

// Source describes where command input comes from.
type Source struct {
	// File is read when set.
	File string
	// Stdin is read when File is empty. Tests inject a reader here.
	Stdin io.Reader
	// Editor opens $EDITOR when neither a file nor piped input is available.
	Editor bool
	// Ext is the temp file extension used for the editor, e.g. ".html".
	Ext string
}

// Read returns the content of the source. Whitespace-only content is an error.
func Read(src Source) (string, error) {
	content, err := read(src)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrEmpty
	}
	return content, nil
}

func read(src Source) (string, error) {
	if src.File != "" && src.File != "-" {
		data, err := os.ReadFile(src.File)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if src.Stdin != nil {
		return readAll(src.Stdin)
	}

	// Check if stdin has data
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		return readAll(os.Stdin)
	}

	if src.Editor {
		return OpenEditor(src.Ext)
	}
	return "", fmt.Errorf("%w: pass a file, pipe content on stdin or use --editor", ErrEmpty)
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// editorCommand returns the editor to launch, honoring $EDITOR then $VISUAL.
func editorCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return "vi"
}

// OpenEditor lets the user write content in an external editor and returns it.
func OpenEditor(ext string) (string, error) {
	if ext == "" {
		ext = ".html"
	}
	tmpfile, err := os.CreateTemp("", "mtx-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	cmd := exec.Command(editorCommand(), tmpfile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	data, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %w", err)
	}
	return string(data), nil
}

// Parse reads the source and converts it into a document node forest.
// Markdown input is rendered to HTML first.
func Parse(src Source, markdown bool, opts mtext.ParseOptions) (*mtext.ParseResult, error) {
	if src.Ext == "" && markdown {
		src.Ext = ".md"
	}
	content, err := Read(src)
	if err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = log.Get()
	}

	if markdown {
		result, err := mtext.ParseMarkdown([]byte(content), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render markdown: %w", err)
		}
		return result, nil
	}
	return mtext.ParseWithOptions(content, opts), nil
}
