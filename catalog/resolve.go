package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/catalog/log"
)

// mark is the traversal state of a field during cycle detection from one
// root. Reaching an inProgress field closes a cycle; reaching a done field
// is a shared dependency and is not an error.
type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

// ResolveSection substitutes every reference in sec, in place.
//
// ResolveSection is not safe for concurrent use on the same section. If it
// returns an error, sec may be partially rewritten and must be discarded.
func ResolveSection(ctx context.Context, name string, sec Section, opts ...Option) error {
	return resolveSection(ctx, name, sec, makeOptions(opts...))
}

type resolver struct {
	ctx     context.Context
	logger  log.Logger
	section Section
	index   index
}

func resolveSection(ctx context.Context, name string, sec Section, o options) error {
	idx, err := indexSection(sec)
	if err != nil {
		return inSection(err, name)
	}

	r := resolver{
		ctx:     ctx,
		logger:  o.logger.With(slog.String("section", name)),
		section: sec,
		index:   idx,
	}

	roots := idx.pendingNames()

	r.logger.TraceContext(ctx, "resolve section",
		slog.Int("fields", len(sec)),
		slog.Int("pending", len(roots)),
	)

	for _, root := range roots {
		// resolved already as a dependency of an earlier root
		if !idx[root].pending() {
			continue
		}

		if err := r.check(root); err != nil {
			return inSection(err, name)
		}

		if err := r.substitute(root); err != nil {
			return inSection(err, name)
		}
	}

	return nil
}

// check walks every field reachable from root, validating each reference
// and failing on the first cycle. Nothing is mutated.
func (r *resolver) check(root string) error {
	marks := make(map[string]mark)

	var (
		path []string
		walk func(name string) error
	)

	walk = func(name string) error {
		marks[name] = inProgress
		path = append(path, name)

		for _, ref := range r.index[name].refs {
			target, ok := r.index[ref.Name]
			if !ok {
				return inField(
					ErrUnknownReference.
						Wrap(fmt.Errorf("{%s}", ref.Name)).
						With(slog.String("reference", ref.Name)),
					name,
				)
			}

			if !target.value.Kind.IsScalar() {
				return inField(
					ErrUnsupportedReferenceType.
						Wrap(fmt.Errorf("{%s} is %s", ref.Name, target.value.TypeName())).
						With(
							slog.String("reference", ref.Name),
							slog.String("kind", target.value.TypeName()),
						),
					name,
				)
			}

			switch marks[ref.Name] {
			case inProgress:
				return cyclic(path, name, ref.Name)

			case done:
				continue

			case unvisited:
			}

			if !target.pending() {
				marks[ref.Name] = done

				continue
			}

			if err := walk(ref.Name); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		marks[name] = done

		return nil
	}

	return walk(root)
}

// cyclic reports the cycle closed by the edge from -> to, where to is on
// the current traversal path.
func cyclic(path []string, from, to string) *Error {
	chain := slices.Clone(path[slices.Index(path, to):])
	chain = append(chain, to)

	return ErrCyclicReference.
		Wrap(fmt.Errorf("%q <-> %q (%s)", from, to, strings.Join(chain, " -> "))).
		With(
			slog.String("field", from),
			slog.String("reference", to),
			slog.Any("cycle", chain),
		)
}

// substitute resolves name after its dependencies, splicing each rendered
// target into the field's raw string. Resolved fields return immediately.
func (r *resolver) substitute(name string) error {
	e := r.index[name]
	if !e.pending() {
		return nil
	}

	raw := e.value.Str

	var b strings.Builder

	b.Grow(len(raw))

	last := 0

	for _, ref := range e.refs {
		if err := r.substitute(ref.Name); err != nil {
			return err
		}

		text, err := r.index[ref.Name].value.Render()
		if err != nil {
			// check accepted the target, so this is a bug
			return inField(err, name)
		}

		b.WriteString(raw[last:ref.Start])
		b.WriteString(text)
		last = ref.End
	}

	b.WriteString(raw[last:])

	e.value = StringValue(b.String())
	e.refs = nil
	r.section[name] = e.value

	r.logger.TraceContext(r.ctx, "resolved field",
		slog.String("field", name),
		slog.String("value", e.value.Str),
	)

	return nil
}
