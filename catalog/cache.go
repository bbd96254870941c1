package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// cache stores resolved documents keyed by the xxh3 hash of their source.
// Resolution is deterministic, so options do not participate in the key.
//
//nolint:gochecknoglobals
var cache sync.Map

// cached is the single resolution of one source.
type cached struct {
	once sync.Once
	doc  Document
	err  error
}

// ParseReader reads, decodes, and resolves a document from r.
//
// Results are cached by source content: identical input is decoded and
// resolved once per process, even when requested from several goroutines.
// Each call returns its own copy of the document.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (Document, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return parseCached(ctx, data, makeOptions(opts...))
}

// ParseString is [ParseReader] over a string.
func ParseString(ctx context.Context, source string, opts ...Option) (Document, error) {
	return parseCached(ctx, []byte(source), makeOptions(opts...))
}

func parseCached(ctx context.Context, data []byte, o options) (Document, error) {
	sum := xxh3.Hash(data)
	key := cacheKey(sum)

	for {
		value, hit := cache.LoadOrStore(key, new(cached))
		entry := value.(*cached) //nolint:forcetypeassert

		o.logger.TraceContext(ctx, "cache lookup",
			slog.String("source_hash", strconv.FormatUint(sum, 16)),
			slog.Bool("cache_hit", hit),
		)

		entry.once.Do(func() {
			doc, err := decode(ctx, data, o)
			if err == nil {
				doc, err = Resolve(ctx, doc, withOptions(o))
			}

			entry.doc, entry.err = doc, err
		})

		if entry.err == nil {
			return entry.doc.Clone(), nil
		}

		if !canceled(entry.err) {
			return nil, entry.err
		}

		// never pin a failure caused by a context
		cache.CompareAndDelete(key, entry)

		// the context may have been another caller's; retry with ours
		if ctx.Err() != nil {
			return nil, entry.err
		}
	}
}

func cacheKey(sum uint64) string { return strconv.FormatUint(sum, 36) }

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// withOptions replays already-built options.
func withOptions(o options) Option {
	return func(dst *options) { *dst = o }
}

// ClearCache removes all cached documents.
func ClearCache() {
	cache.Clear()
}
