package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format is an output encoding for resolved documents.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats returns the supported output formats.
func Formats() []Format { return []Format{FormatTOML, FormatJSON, FormatYAML} }

// Format writes d to w in the given format. Keys are written in sorted
// order. An indent of zero selects the most compact layout the format has.
func (d Document) Format(ctx context.Context, w io.Writer, f Format, indent int) error {
	return encode(ctx, w, d.Native(), f, indent)
}

// Format writes s to w in the given format, with its fields at top level.
func (s Section) Format(ctx context.Context, w io.Writer, f Format, indent int) error {
	return encode(ctx, w, s.Native(), f, indent)
}

func encode(ctx context.Context, w io.Writer, v map[string]any, f Format, indent int) error {
	var err error

	switch f {
	case FormatTOML:
		err = encodeTOML(w, v, indent)
	case FormatJSON:
		err = encodeJSON(w, v, indent)
	case FormatYAML:
		err = encodeYAML(ctx, w, v, indent)
	default:
		err = fmt.Errorf("unknown format %q", f)
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", string(f)))
	}

	return nil
}

func encodeTOML(w io.Writer, v map[string]any, indent int) error {
	enc := toml.NewEncoder(w)
	enc.Indent = strings.Repeat(" ", max(indent, 0))

	return enc.Encode(v)
}

func encodeJSON(w io.Writer, v map[string]any, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(jsonFloats(v))
}

// jsonFloats replaces non-finite floats, which JSON cannot represent, with
// their TOML spellings as strings.
func jsonFloats(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formatFloat(v)
		}

		return v

	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = jsonFloats(elem)
		}

		return out

	case []map[string]any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = jsonFloats(elem)
		}

		return out

	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = jsonFloats(elem)
		}

		return out

	default:
		return v
	}
}

func encodeYAML(ctx context.Context, w io.Writer, v map[string]any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
