package catalog

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Reserved field names, held for a future typed-reference syntax.
const (
	ReservedString = "STRING"
	ReservedNumber = "NUMBER"
)

//nolint:gochecknoglobals
var reserved = map[string]struct{}{
	ReservedString: {},
	ReservedNumber: {},
}

// IsReserved reports whether name may not be used as a field name.
func IsReserved(name string) bool {
	_, ok := reserved[name]

	return ok
}

// ReservedNames returns the reserved field names in sorted order.
func ReservedNames() []string { return slices.Sorted(maps.Keys(reserved)) }

// entry is the resolution state of one field. It is pending while refs is
// non-empty and resolved otherwise; a resolved entry is never revisited.
type entry struct {
	value Value
	refs  []Reference
}

func (e *entry) pending() bool { return len(e.refs) > 0 }

type index map[string]*entry

// indexSection scans every string field of sec. Reserved names are rejected
// before anything is scanned.
func indexSection(sec Section) (index, error) {
	names := sec.Names()

	for _, name := range names {
		if IsReserved(name) {
			return nil, inField(ErrReservedName, name)
		}
	}

	idx := make(index, len(sec))

	for _, name := range names {
		e := &entry{value: sec[name]}

		if e.value.Kind == KindString {
			refs, err := Scan(e.value.Str)
			if err != nil {
				return nil, inField(err, name)
			}

			e.refs = refs
		}

		idx[name] = e
	}

	return idx, nil
}

// pendingNames returns the names of pending fields in sorted order.
func (idx index) pendingNames() []string {
	var names []string

	for name, e := range idx {
		if e.pending() {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// inField prefixes the cause of err with the field it occurred in.
func inField(err error, field string) *Error {
	return scoped(err, "field", field)
}

// inSection prefixes the cause of err with the section it occurred in.
func inSection(err error, section string) *Error {
	return scoped(err, "section", section)
}

func scoped(err error, key, name string) *Error {
	e := WrapError(err)

	cause := e.err
	if cause == nil {
		cause = fmt.Errorf("%s %q", key, name)
	} else {
		cause = fmt.Errorf("%s %q: %w", key, name, cause)
	}

	return &Error{
		base:  e.base,
		msg:   e.msg,
		err:   cause,
		attrs: append(slices.Clone(e.attrs), slog.String(key, name)),
	}
}
