package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(format Format) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRenderer(format, true)
	r.SetWriter(&buf)
	return r, &buf
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"table", false},
		{"json", false},
		{"plain", false},
		{"yaml", true},
		{"TABLE", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid output format")
			assert.Contains(t, err.Error(), "table, json, plain")
		})
	}
}

func TestNewRenderer_DefaultsToTable(t *testing.T) {
	assert.Equal(t, FormatTable, NewRenderer("", true).Format())
	assert.Equal(t, FormatPlain, NewRenderer(FormatPlain, true).Format())
}

func TestRenderResult(t *testing.T) {
	payload := struct {
		Text     string   `json:"text"`
		Height   float64  `json:"height"`
		Warnings []string `json:"warnings,omitempty"`
	}{Text: `\pqc;Hi\P`, Height: 2.5}

	for _, format := range []Format{FormatTable, FormatPlain} {
		t.Run(string(format), func(t *testing.T) {
			r, buf := newTestRenderer(format)
			require.NoError(t, r.RenderResult(payload.Text, payload))
			assert.Equal(t, "\\pqc;Hi\\P\n", buf.String())
		})
	}

	t.Run("json", func(t *testing.T) {
		r, buf := newTestRenderer(FormatJSON)
		require.NoError(t, r.RenderResult(payload.Text, payload))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, `\pqc;Hi\P`, got["text"])
		assert.Equal(t, 2.5, got["height"])
		assert.NotContains(t, got, "warnings")
	})
}

func TestRenderJSON_Unencodable(t *testing.T) {
	r, _ := newTestRenderer(FormatJSON)
	err := r.RenderJSON(make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode output")
}

func TestRenderOutline(t *testing.T) {
	rows := []OutlineRow{
		{Node: "paragraph", Props: []string{"align=center"}},
		{Depth: 1, Node: "text", Text: "Hi", Props: []string{"bold", "font=\"Arial\""}},
	}

	t.Run("table", func(t *testing.T) {
		r, buf := newTestRenderer(FormatTable)
		r.RenderOutline(rows)

		assert.Equal(t, []string{
			"NODE  TEXT  PROPERTIES",
			`paragraph  ""  align=center`,
			`  text  "Hi"  bold font="Arial"`,
		}, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"))
	})

	t.Run("plain", func(t *testing.T) {
		r, buf := newTestRenderer(FormatPlain)
		r.RenderOutline(rows)

		assert.Equal(t, "paragraph\t\"\"\talign=center\n  text\t\"Hi\"\tbold font=\"Arial\"\n", buf.String())
	})

	t.Run("empty forest", func(t *testing.T) {
		r, buf := newTestRenderer(FormatPlain)
		r.RenderOutline(nil)
		assert.Empty(t, buf.String())
	})
}

func TestRenderOutline_LongTextIsShortened(t *testing.T) {
	r, buf := newTestRenderer(FormatPlain)
	r.RenderOutline([]OutlineRow{{Node: "text", Text: strings.Repeat("ä", 60)}})

	cell := strings.Split(strings.TrimSpace(buf.String()), "\t")[1]
	assert.Equal(t, maxOutlineText, len([]rune(cell)))
	assert.True(t, strings.HasPrefix(cell, `"ää`))
	assert.True(t, strings.HasSuffix(cell, "..."))
}

func TestShorten(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{`"Hi"`, 10, `"Hi"`},
		{`"12345"`, 7, `"12345"`},
		{`"hello world"`, 8, `"hell...`},
		{`"°°°°°°"`, 6, `"°°...`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shorten(tt.input, tt.maxLen))
		})
	}
}

func TestRenderWarnings(t *testing.T) {
	warnings := []string{"unknown element: <blink>", `unsupported color "red" on <span>`}

	t.Run("table", func(t *testing.T) {
		r, buf := newTestRenderer(FormatTable)
		r.RenderWarnings(warnings)
		assert.Equal(t, "! unknown element: <blink>\n! unsupported color \"red\" on <span>\n", buf.String())
	})

	t.Run("json carries warnings in its payload", func(t *testing.T) {
		r, buf := newTestRenderer(FormatJSON)
		r.RenderWarnings(warnings)
		assert.Empty(t, buf.String())
	})
}

func TestRenderSample(t *testing.T) {
	r, buf := newTestRenderer(FormatTable)
	r.RenderSample("MText", `{\fArial|b1|i0;Sample}`)
	assert.Equal(t, "MText: {\\fArial|b1|i0;Sample}\n", buf.String())
}

func TestRenderSettings(t *testing.T) {
	settings := []Setting{
		{Name: "Font", Value: "Romans", Source: "config"},
		{Name: "Output", Value: "", Source: "default"},
	}

	t.Run("table", func(t *testing.T) {
		r, buf := newTestRenderer(FormatTable)
		require.NoError(t, r.RenderSettings("/tmp/mtx/config.yml", false, settings))

		output := buf.String()
		assert.Contains(t, output, "Font:       Romans  (source: config)")
		assert.Contains(t, output, "Output:     -")
		assert.Contains(t, output, "Config file: /tmp/mtx/config.yml")
		assert.Contains(t, output, "(file not found)")
	})

	t.Run("json", func(t *testing.T) {
		r, buf := newTestRenderer(FormatJSON)
		require.NoError(t, r.RenderSettings("/tmp/mtx/config.yml", true, settings))

		var got struct {
			Path     string    `json:"path"`
			Exists   bool      `json:"exists"`
			Settings []Setting `json:"settings"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "/tmp/mtx/config.yml", got.Path)
		assert.True(t, got.Exists)
		assert.Equal(t, settings, got.Settings)
	})
}

func TestStatusLines(t *testing.T) {
	r, buf := newTestRenderer(FormatTable)
	r.Success("Configuration saved to /tmp/config.yml")
	r.Error("no input provided")

	assert.Equal(t, "✓ Configuration saved to /tmp/config.yml\n✗ no input provided\n", buf.String())
}
