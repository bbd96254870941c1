package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/catalog"
	"github.com/ardnew/catalog/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the named section of a catalog settings file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.toml")
//
// The settings file is a catalog like any other, so its fields may reference
// one another:
//
//	[config]
//	notes = "/home/me/notes"
//	file = "{notes}/catalog.toml"
//	log-level = "debug"
//	jobs = 4
//
// Keys are flag names; hyphens may also be written as underscores
// (log_level). Fields that name no flag are ignored. Command-line flags
// override settings file values.
//
// A settings file that cannot be resolved is reported and otherwise ignored,
// so that "catalog init --force" can replace it.
func resolve(ctx context.Context, name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := catalog.ParseReader(ctx, r, catalog.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring settings file", slog.Any("error", err))

			return config{}, nil
		}

		sec, ok := doc[name]
		if !ok {
			return config{}, nil
		}

		return sectionToConfig(sec), nil
	}
}

// config implements [kong.Resolver] for a resolved settings section.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// unknown keys may be references used by other fields
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// sectionToConfig converts resolved fields to resolver values.
// Kong requires numbers as strings for parsing.
func sectionToConfig(sec catalog.Section) config {
	result := make(config, len(sec))

	for key, v := range sec {
		switch v.Kind {
		case catalog.KindInteger, catalog.KindFloat:
			result[key] = v.String()

		case catalog.KindString, catalog.KindBoolean, catalog.KindOther:
			result[key] = v.Native()

		default:
			result[key] = v.Native()
		}
	}

	return result
}
