package catalog

import (
	"fmt"
	"log/slog"
)

// Reference is a {name} occurrence inside a string field.
// The half-open byte range [Start, End) covers the braces.
type Reference struct {
	Name  string
	Start int
	End   int
}

// Scan returns the references in raw, in order of appearance.
//
// A '}' outside of a reference is literal text. There is no escape syntax, so
// a literal '{' cannot appear in a field value.
func Scan(raw string) ([]Reference, error) {
	var (
		refs   []Reference
		inside bool
		start  int
	)

	for i := range len(raw) {
		switch raw[i] {
		case '{':
			if inside {
				return nil, malformed(raw, i, "nested '{'")
			}

			inside, start = true, i

		case '}':
			if !inside {
				continue
			}

			if i == start+1 {
				return nil, malformed(raw, start, "empty reference")
			}

			refs = append(refs, Reference{
				Name:  raw[start+1 : i],
				Start: start,
				End:   i + 1,
			})
			inside = false
		}
	}

	if inside {
		return nil, malformed(raw, start, "unmatched '{'")
	}

	return refs, nil
}

func malformed(raw string, offset int, reason string) *Error {
	return ErrMalformedReference.
		Wrap(fmt.Errorf("%s at offset %d", reason, offset)).
		With(
			slog.String("value", raw),
			slog.Int("offset", offset),
		)
}
