// Package cmd implements the catalog subcommands.
//
// Commands share the catalog selected by the global flags, which [cli]
// stores in the context with [WithSource]; each command loads and resolves
// it on demand.
package cmd

//nolint:gochecknoglobals
var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the settings file.
	ConfigIdentifier = "config"
)

// DefaultFile is the catalog read when no file is given.
const DefaultFile = "config.toml"
