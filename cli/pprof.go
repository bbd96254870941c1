//go:build pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/log"
	"github.com/ardnew/catalog/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:"${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                         help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": profile.Enum(),
		"pprofDir":      profile.DefaultDir(cacheDir()),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if a mode was selected.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	return profile.Session{
		Mode:  f.Mode,
		Dir:   f.Dir,
		Quiet: true,
	}.Start(ctx, log.Default()).Stop
}
