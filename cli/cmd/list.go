package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/catalog/log"
)

// List prints section names, one per line, in sorted order.
type List struct {
	Where string `help:"Only sections matching this expr-lang predicate; fields are variables and name is the section name" short:"w"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFrom(ctx)

	doc, done, err := src.open(ctx)
	if err != nil || done {
		return err
	}

	names, err := doc.Filter(ctx, l.Where)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "list sections",
		slog.String("where", l.Where),
		slog.Int("matched", len(names)),
		slog.Int("total", len(doc)),
	)

	w := src.output()

	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
