package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/catalog"
	"github.com/ardnew/catalog/log"
	"github.com/ardnew/catalog/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath, ok := kongVar(ctx, ConfigIdentifier)
	if !ok {
		panic("internal error: settings file path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	doc := catalog.Document{ConfigIdentifier: i.buildSection(ctx)}

	err = doc.Format(ctx, file, catalog.FormatTOML, defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildSection collects the current flag values keyed by flag name.
func (i *Init) buildSection(ctx context.Context) catalog.Section {
	ktx := kongContextFrom(ctx)
	sec := make(catalog.Section)

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v, ok := i.flagValue(ktx, flag); ok {
			sec[flag.Name] = v
		}
	}

	return sec
}

// flagValue returns the settings value for a CLI flag, or false if unset.
func (*Init) flagValue(ktx *kong.Context, flag *kong.Flag) (catalog.Value, bool) {
	val := ktx.FlagValue(flag)
	if val == nil {
		return catalog.Value{}, false
	}

	switch v := val.(type) {
	case bool:
		return catalog.BooleanValue(v), true

	case string:
		if v == "" {
			return catalog.Value{}, false
		}

		return catalog.StringValue(v), true

	case int:
		return catalog.IntegerValue(int64(v)), true

	case int64:
		return catalog.IntegerValue(v), true

	case float64:
		return catalog.FloatValue(v), true

	case []string:
		if len(v) == 0 {
			return catalog.Value{}, false
		}

		return catalog.OtherValue(v), true

	case fmt.Stringer:
		return catalog.StringValue(v.String()), true

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return catalog.Value{}, false
		}

		return catalog.StringValue(s), true
	}
}
