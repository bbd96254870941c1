package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/cli/cmd"
	"github.com/ardnew/catalog/log"
	"github.com/ardnew/catalog/pkg"
)

// CLI is the top-level command-line interface for catalog.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	File     string `default:"${file}" help:"Catalog file to resolve or '-' for stdin"  short:"f"`
	Jobs     int    `default:"${jobs}" help:"Number of sections resolved in parallel"   short:"j"`
	Silent   bool   `                  help:"Do not print anything on success"          short:"s"`
	Validate bool   `                  help:"Resolve the catalog and exit"              short:"v"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Init cmd.Init `cmd:"" help:"Write the settings file from current flag values"`
	Show cmd.Show `cmd:"" help:"Print the resolved catalog or one section"`
	Get  cmd.Get  `cmd:"" help:"Print one resolved field"`
	List cmd.List `cmd:"" help:"List section names"`

	Browse cmd.Browse `cmd:"" default:"withargs" help:"Browse resolved sections"`
}

// Run executes the catalog CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	settingsPath := configPath(baseSettings)

	vars := kong.Vars{
		cmd.ConfigIdentifier: settingsPath,
		cmd.CacheIdentifier:  cacheDir(),
		"file":               cmd.DefaultFile,
		"jobs":               "1",
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx, settingsSection), settingsPath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	if cli.Silent {
		log.Config(log.WithLevel(log.LevelError))
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSource(ctx, cmd.Source{
		Path:     cli.File,
		Jobs:     cli.Jobs,
		Silent:   cli.Silent,
		Validate: cli.Validate,
	})

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
