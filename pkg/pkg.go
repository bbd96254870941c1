//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command name. It appears in help text, the settings
	// directory, and the settings file's section name.
	Name = "catalog"
	// Description is the one-line summary shown in help output.
	Description = "Resolve {field} references in TOML catalogs"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
