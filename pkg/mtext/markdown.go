package mtext

import (
	"bytes"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a pre-configured goldmark instance. Soft line breaks become
// <br> so a single newline in the source starts a new MText line.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// blockGap matches the newlines goldmark writes between block tags, which
// would otherwise become literal line feeds in the text.
var blockGap = regexp.MustCompile(`>\s*\n\s*<`)

// MarkdownToHTML renders markdown to the HTML subset understood by Parse.
func MarkdownToHTML(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert(markdown, &buf); err != nil {
		return "", err
	}
	out := strings.ReplaceAll(buf.String(), "<br>\n", "<br>")
	out = blockGap.ReplaceAllString(out, "><")
	return strings.TrimSpace(out), nil
}

// ParseMarkdown converts markdown into a document node forest by rendering it
// to HTML first.
func ParseMarkdown(markdown []byte, opts ParseOptions) (*ParseResult, error) {
	markup, err := MarkdownToHTML(markdown)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(markup, opts), nil
}

// ToMarkdown converts editor HTML to markdown for a plain-text preview.
func ToMarkdown(markup string) (string, error) {
	if markup == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
