package cmd

import (
	"context"
	"fmt"
	"log/slog"
)

// Get prints the rendered value of one resolved field.
type Get struct {
	Section string `arg:"" help:"Section name" name:"section"`
	Field   string `arg:"" help:"Field name"   name:"field"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFrom(ctx)

	doc, done, err := src.open(ctx)
	if err != nil || done {
		return err
	}

	sec, err := doc.Lookup(g.Section)
	if err != nil {
		return err
	}

	v, err := sec.Lookup(g.Field)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(src.output(), v.String())
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(
			slog.String("section", g.Section),
			slog.String("field", g.Field),
		)
	}

	return nil
}
