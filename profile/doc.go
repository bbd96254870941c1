// Package profile provides optional runtime profiling for catalog.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// pprof build tag:
//
//	go build -tags pprof -o catalog .
//
// Without the tag every [Session] starts a no-op profiler and [Modes] is
// empty, so the command line offers no profiling flags.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// A [Session] names the mode and output directory and is started by the
// command line once flags are parsed:
//
//	p := profile.Session{Mode: "cpu", Dir: profile.DefaultDir(cache)}.Start(ctx, logger)
//	defer p.Stop()
//
// Profiles are written to the configured directory, by default
// $XDG_CACHE_HOME/catalog/pprof, and are read with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/catalog/pprof/cpu.pprof
//
// Resolving a large catalog with many sections in parallel (--jobs) is the
// case worth profiling; block and mutex profiles show contention on the
// shared document cache.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
