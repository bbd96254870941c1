package profile

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/catalog/log"
)

// Profiler is a running profiling session.
type Profiler interface{ Stop() }

// Session describes one profiling run.
type Session struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty lets pkg/profile pick a temp dir
	Quiet bool   // suppress pkg/profile's own start/stop messages
}

// DefaultDir returns the profile directory under the given cache directory.
func DefaultDir(cache string) string { return filepath.Join(cache, Tag) }

// Enum returns the accepted --pprof-mode values in kong's enum syntax. The
// leading empty choice leaves profiling disabled.
func Enum() string { return "," + strings.Join(Modes(), ",") }

// Start begins profiling. An empty or unsupported mode, or a build without
// the pprof tag, yields a no-op Profiler. Stop is always safe to call.
func (s Session) Start(ctx context.Context, logger log.Logger) Profiler {
	if s.Mode == "" {
		return ignore{}
	}

	p := start(s)
	if _, ok := p.(ignore); ok {
		logger.WarnContext(ctx, "profiling unavailable", slog.String("mode", s.Mode))

		return p
	}

	logger.DebugContext(ctx, "pprof start",
		slog.String("mode", s.Mode),
		slog.String("dir", s.Dir),
	)

	return stopFunc(func() {
		logger.DebugContext(ctx, "pprof stop",
			slog.String("mode", s.Mode),
			slog.String("dir", s.Dir),
		)
		p.Stop()
	})
}

type stopFunc func()

func (f stopFunc) Stop() { f() }

type ignore struct{}

func (ignore) Stop() {}
