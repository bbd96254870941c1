package browse

import "errors"

// ErrEmptyCatalog is returned by [Run] for a catalog without sections.
var ErrEmptyCatalog = errors.New("catalog has no sections")
