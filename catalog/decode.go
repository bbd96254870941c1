package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/readahead"
)

// StdinPath is the path that selects standard input in [ParseFile].
const StdinPath = "-"

// Decode reads a TOML document from r without resolving it.
//
// Every top-level key must be a table; each becomes a [Section].
func Decode(ctx context.Context, r io.Reader, opts ...Option) (Document, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return decode(ctx, data, makeOptions(opts...))
}

// readAll drains r through an asynchronous read-ahead buffer.
func readAll(r io.Reader) ([]byte, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return data, nil
}

func decode(ctx context.Context, data []byte, o options) (Document, error) {
	var raw map[string]any

	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	if err != nil {
		e := ErrDecode.Wrap(err)

		var perr toml.ParseError
		if errors.As(err, &perr) {
			e = e.With(slog.Int("line", perr.Position.Line))
		}

		return nil, e
	}

	o.logger.TraceContext(ctx, "decoded input",
		slog.Int("source_bytes", len(data)),
		slog.Int("keys", len(md.Keys())),
	)

	doc := make(Document, len(raw))

	for name, v := range raw {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, ErrInvalidSection.
				Wrap(fmt.Errorf("%q is %s, not a table", name, ValueOf(v).TypeName())).
				With(slog.String("section", name))
		}

		sec := make(Section, len(table))
		for field, fv := range table {
			sec[field] = ValueOf(fv)
		}

		doc[name] = sec
	}

	return doc, nil
}

// ParseFile reads, decodes, and resolves the document at path.
// The path [StdinPath] reads standard input.
func ParseFile(ctx context.Context, path string, opts ...Option) (Document, error) {
	if path == StdinPath {
		return ParseReader(ctx, os.Stdin, opts...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	doc, err := ParseReader(ctx, f, opts...)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	return doc, nil
}
