package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/catalog"
	"github.com/ardnew/catalog/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the named kong variable, if a kong context is present.
func kongVar(ctx context.Context, name string) (string, bool) {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return "", false
	}

	v, ok := ktx.Model.Vars()[name]

	return v, ok
}

// Source is the catalog selected by the global flags.
type Source struct {
	Path     string // catalog.StdinPath reads stdin
	Jobs     int
	Silent   bool
	Validate bool

	Stdout io.Writer // nil writes to os.Stdout
}

type sourceKey struct{}

// WithSource returns a new context.Context containing src.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// sourceFrom retrieves the Source stored in ctx by WithSource. A context
// without one selects [DefaultFile].
func sourceFrom(ctx context.Context) Source {
	src, _ := ctx.Value(sourceKey{}).(Source)
	if src.Path == "" {
		src.Path = DefaultFile
	}

	return src
}

func (s Source) options() []catalog.Option {
	return []catalog.Option{
		catalog.WithLogger(log.Default()),
		catalog.WithConcurrency(s.Jobs),
	}
}

// output returns the writer for command results.
func (s Source) output() io.Writer {
	switch {
	case s.Silent:
		return io.Discard
	case s.Stdout != nil:
		return s.Stdout
	default:
		return os.Stdout
	}
}

// open loads and resolves the catalog. If only validation was requested, it
// reports done and the caller returns without further output.
func (s Source) open(ctx context.Context) (doc catalog.Document, done bool, err error) {
	start := time.Now()

	doc, err = catalog.ParseFile(ctx, s.Path, s.options()...)
	if err != nil {
		return nil, false, err
	}

	attrs := []slog.Attr{
		slog.String("file", s.Path),
		slog.Int("sections", len(doc)),
		slog.Duration("elapsed", time.Since(start)),
	}

	if s.Validate {
		log.InfoContext(ctx, "catalog is valid", attrs...)

		return doc, true, nil
	}

	log.DebugContext(ctx, "catalog loaded", attrs...)

	return doc, false, nil
}
