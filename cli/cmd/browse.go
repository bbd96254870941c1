package cmd

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/catalog/catalog"
	"github.com/ardnew/catalog/cli/cmd/browse"
	"github.com/ardnew/catalog/log"
)

// baseHistory is the file in the cache directory recording pinned sections.
const baseHistory = "history.utf8"

// Browse opens the terminal UI over the resolved catalog.
type Browse struct {
	Target string `arg:"" help:"Section to open (fuzzy filter if not an exact name)" name:"target" optional:""`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFrom(ctx)

	doc, done, err := src.open(ctx)
	if err != nil || done || src.Silent {
		return err
	}

	opts := []browse.Option{
		browse.WithTarget(b.Target),
		browse.WithLogger(log.Default()),
		browse.WithParseOptions(src.options()...),
	}

	if src.Path == catalog.StdinPath {
		// keys cannot be read from the consumed catalog stream
		opts = append(opts, browse.WithProgramOptions(tea.WithInputTTY()))
	} else {
		opts = append(opts, browse.WithSource(src.Path))
	}

	if dir, ok := kongVar(ctx, CacheIdentifier); ok {
		opts = append(opts, browse.WithHistory(filepath.Join(dir, baseHistory)))
	}

	return browse.Run(ctx, doc, opts...)
}
