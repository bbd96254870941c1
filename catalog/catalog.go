package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/catalog/log"
)

// Document maps section names to sections.
type Document map[string]Section

// Section maps field names to values. References never cross sections.
type Section map[string]Value

// DefaultConcurrency is the number of sections resolved at once by
// [Resolve] unless overridden with [WithConcurrency].
const DefaultConcurrency = 1

type options struct {
	logger      log.Logger
	concurrency int
}

// Option configures decoding and resolution.
type Option func(*options)

// WithLogger sets the structured logger for trace-level diagnostics.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithConcurrency sets the maximum number of sections resolved in parallel.
// Values below 1 select [DefaultConcurrency].
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

func makeOptions(opts ...Option) options {
	o := options{concurrency: DefaultConcurrency}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.concurrency < 1 {
		o.concurrency = DefaultConcurrency
	}

	return o
}

// Resolve substitutes every reference in every section of doc, in place,
// and returns doc.
//
// On error the returned document is nil and doc must be discarded: sections
// other than the failing one may or may not have been resolved, and the
// failing section may be partially rewritten.
func Resolve(ctx context.Context, doc Document, opts ...Option) (Document, error) {
	o := makeOptions(opts...)
	names := doc.Names()

	o.logger.TraceContext(ctx, "resolve document",
		slog.Int("sections", len(names)),
		slog.Int("concurrency", o.concurrency),
	)

	if o.concurrency == 1 {
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if err := resolveSection(ctx, name, doc[name], o); err != nil {
				return nil, err
			}
		}

		return doc, nil
	}

	// Each goroutine owns exactly one section map; the outer map is only read.
	// Siblings are not canceled on failure, so every section reports its own
	// error and the first in sorted order wins, as in the sequential case.
	var g errgroup.Group

	g.SetLimit(o.concurrency)

	errs := make([]error, len(names))

	for i, name := range names {
		sec := doc[name]

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err

				return nil
			}

			errs[i] = resolveSection(ctx, name, sec, o)

			return nil
		})
	}

	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// Names returns the section names in sorted order.
func (d Document) Names() []string { return slices.Sorted(maps.Keys(d)) }

// Lookup returns the named section.
func (d Document) Lookup(name string) (Section, error) {
	sec, ok := d[name]
	if !ok {
		return nil, ErrSectionNotFound.
			Wrap(fmt.Errorf("%q", name)).
			With(slog.String("section", name))
	}

	return sec, nil
}

// Clone returns a deep copy of d, including nested tables and arrays.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	c := make(Document, len(d))
	for name, sec := range d {
		c[name] = sec.Clone()
	}

	return c
}

// Native converts d to nested plain Go maps.
func (d Document) Native() map[string]any {
	m := make(map[string]any, len(d))
	for name, sec := range d {
		m[name] = sec.Native()
	}

	return m
}

// Names returns the field names in sorted order.
func (s Section) Names() []string { return slices.Sorted(maps.Keys(s)) }

// Lookup returns the named field.
func (s Section) Lookup(field string) (Value, error) {
	v, ok := s[field]
	if !ok {
		return Value{}, ErrFieldNotFound.
			Wrap(fmt.Errorf("%q", field)).
			With(slog.String("field", field))
	}

	return v, nil
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s == nil {
		return nil
	}

	c := make(Section, len(s))
	for field, v := range s {
		if v.Kind == KindOther {
			v.Other = cloneNative(v.Other)
		}

		c[field] = v
	}

	return c
}

// cloneNative copies the containers produced by the TOML decoder. Other
// values, such as datetimes, are immutable and returned as is.
func cloneNative(v any) any {
	switch v := v.(type) {
	case map[string]any:
		c := make(map[string]any, len(v))
		for key, elem := range v {
			c[key] = cloneNative(elem)
		}

		return c

	case []map[string]any:
		c := make([]map[string]any, len(v))
		for i, elem := range v {
			c[i], _ = cloneNative(elem).(map[string]any)
		}

		return c

	case []any:
		c := make([]any, len(v))
		for i, elem := range v {
			c[i] = cloneNative(elem)
		}

		return c

	default:
		return v
	}
}

// Native converts s to a plain Go map.
func (s Section) Native() map[string]any {
	m := make(map[string]any, len(s))
	for name, v := range s {
		m[name] = v.Native()
	}

	return m
}
