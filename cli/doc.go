// Package cli contains the command line interface for catalog.
//
// # Usage
//
//	catalog [flags] [target]                  browse resolved sections
//	catalog [flags] show [target]             print the resolved catalog
//	catalog [flags] get <section> <field>     print one resolved field
//	catalog [flags] list [--where expr]       list section names
//	catalog [flags] init [--force]            write the settings file
//
// The catalog is read from --file (default config.toml in the working
// directory, or '-' for stdin). With --validate the catalog is resolved and
// the program exits without running the command; with --silent nothing is
// printed on success. --jobs resolves that many sections in parallel, and
// --version prints the version.
//
// # Settings
//
// Flag defaults are read from the [config] section of the settings file in
// the user configuration directory (for example,
// ~/.config/catalog/config.toml). The settings file is itself a catalog, so
// its fields may reference one another. Command-line flags override it.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (none, RFC3339, kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o catalog .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     ~/.cache/catalog/pprof)
package cli
