package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/catalog/catalog"
)

// Show prints the resolved catalog, or one section of it.
type Show struct {
	Format string `default:"toml" enum:"toml,json,yaml" help:"Output format"                          short:"o"`
	Indent int    `default:"2"                          help:"Indent width (0 for the compact layout)" short:"i"`

	Target string `arg:"" help:"Section to print (default: all)" name:"target" optional:""`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFrom(ctx)

	doc, done, err := src.open(ctx)
	if err != nil || done {
		return err
	}

	format := catalog.Format(s.Format)

	if s.Target == "" {
		err = doc.Format(ctx, src.output(), format, s.Indent)
	} else {
		var sec catalog.Section

		sec, err = doc.Lookup(s.Target)
		if err != nil {
			return err
		}

		err = sec.Format(ctx, src.output(), format, s.Indent)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", s.Format))
	}

	return nil
}
