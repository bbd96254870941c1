package catalog

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func attrInt(key string, v int) slog.Attr { return slog.Int(key, v) }

func attrString(key, v string) slog.Attr { return slog.String(key, v) }

// mustDecode decodes source without resolving it.
func mustDecode(t *testing.T, source string) Document {
	t.Helper()

	doc, err := Decode(context.Background(), strings.NewReader(source))
	require.NoError(t, err)

	return doc
}

// resolved returns the rendered fields of each section of doc.
func resolved(doc Document) map[string]map[string]string {
	out := make(map[string]map[string]string, len(doc))

	for name, sec := range doc {
		fields := make(map[string]string, len(sec))
		for field, v := range sec {
			fields[field] = v.String()
		}

		out[name] = fields
	}

	return out
}
