package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formatSource = `
[app]
name = "demo"
title = "{name} v{version}"
version = 1.5
debug = true
`

func TestDocument_Format(t *testing.T) {
	doc, err := ParseString(context.Background(), formatSource)
	require.NoError(t, err)

	tests := []struct {
		format Format
		indent int
		want   []string
	}{
		{
			format: FormatTOML,
			indent: 0,
			want: []string{
				"[app]\n",
				"debug = true\n",
				"name = \"demo\"\n",
				"title = \"demo v1.5\"\n",
				"version = 1.5\n",
			},
		},
		{
			format: FormatTOML,
			indent: 4,
			want:   []string{"[app]\n", "    title = \"demo v1.5\"\n"},
		},
		{
			format: FormatJSON,
			indent: 0,
			want: []string{
				`{"app":{"debug":true,"name":"demo","title":"demo v1.5","version":1.5}}` + "\n",
			},
		},
		{
			format: FormatJSON,
			indent: 2,
			want:   []string{"{\n  \"app\": {\n    \"debug\": true,\n"},
		},
		{
			format: FormatYAML,
			indent: 2,
			want:   []string{"app:\n", "  title: demo v1.5\n", "  debug: true\n"},
		},
		{
			format: FormatYAML,
			indent: 0,
			want:   []string{"title: demo v1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, doc.Format(context.Background(), &buf, tt.format, tt.indent))

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestDocument_Format_RoundTrip(t *testing.T) {
	doc, err := ParseString(context.Background(), sampleSource)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, doc.Format(context.Background(), &buf, FormatTOML, 2))

	// resolved output contains no references and resolves to itself
	again, err := ParseString(context.Background(), buf.String())
	require.NoError(t, err)
	assert.Equal(t, resolved(doc), resolved(again))

	var raw map[string]any

	_, err = toml.Decode(buf.String(), &raw)
	require.NoError(t, err)
	assert.Contains(t, raw, "server")
}

func TestSection_Format(t *testing.T) {
	doc, err := ParseString(context.Background(), formatSource)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, doc["app"].Format(context.Background(), &buf, FormatJSON, 0))

	var got map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]any{
		"debug":   true,
		"name":    "demo",
		"title":   "demo v1.5",
		"version": 1.5,
	}, got)
}

func TestFormat_JSONNonFinite(t *testing.T) {
	doc, err := ParseString(context.Background(), `
[limits]
ceiling = inf
floor = -inf
unset = nan
ratio = 0.5
label = "{ceiling}/{ratio}"

[limits.nested]
values = [1.5, nan]
`)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, doc.Format(context.Background(), &buf, FormatJSON, 0))

	var got map[string]map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]any{
		"ceiling": "inf",
		"floor":   "-inf",
		"unset":   "nan",
		"ratio":   0.5,
		"label":   "inf/0.5",
		"nested":  map[string]any{"values": []any{1.5, "nan"}},
	}, got["limits"])
}

func TestFormat_Unknown(t *testing.T) {
	err := Document{}.Format(context.Background(), &strings.Builder{}, Format("xml"), 0)
	require.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []Format{FormatTOML, FormatJSON, FormatYAML}, Formats())
}
