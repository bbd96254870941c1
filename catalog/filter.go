package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
)

// SectionNameVar is the predicate variable bound to the section name, unless
// the section has a field with the same name.
const SectionNameVar = "name"

// Filter returns, in sorted order, the names of sections for which the
// expr-lang predicate evaluates to true. Fields of the section are the
// predicate's variables; fields the section lacks evaluate to nil.
// An empty predicate matches every section.
func (d Document) Filter(ctx context.Context, predicate string) ([]string, error) {
	names := d.Names()

	if strings.TrimSpace(predicate) == "" {
		return names, nil
	}

	program, err := expr.Compile(predicate,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, ErrInvalidPredicate.
			Wrap(err).
			With(slog.String("predicate", predicate))
	}

	matched := make([]string, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		env := d[name].Native()
		if _, ok := env[SectionNameVar]; !ok {
			env[SectionNameVar] = name
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, inSection(
				ErrInvalidPredicate.Wrap(err).With(slog.String("predicate", predicate)),
				name,
			)
		}

		ok, isBool := out.(bool)
		if !isBool {
			return nil, inSection(
				ErrInvalidPredicate.
					Wrap(fmt.Errorf("result is %T, not bool", out)).
					With(slog.String("predicate", predicate)),
				name,
			)
		}

		if ok {
			matched = append(matched, name)
		}
	}

	return matched, nil
}
