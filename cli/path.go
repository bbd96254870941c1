package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/catalog/pkg"
)

const (
	// baseSettings is the base name of the settings file.
	baseSettings = "config.toml"

	// settingsSection is the settings file section holding flag values.
	settingsSection = "config"
)

// defaultDirMode is the permission mode for created directories.
//
//nolint:gochecknoglobals
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the name of the per-user configuration and cache
// directories.
//
// By default, basePrefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with catalog
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name, // dlv default output
			regexp.MustCompile(`^\.+`):             "",       // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// userDir returns the catalog subdirectory of the directory reported by
// locate, falling back to the given dot-directory under $HOME, and then to the
// working directory.
func userDir(locate func() (string, error), fallback string) func() string {
	return sync.OnceValue(
		func() string {
			dir, err := locate()
			if err != nil {
				if home, herr := os.UserHomeDir(); herr == nil {
					dir = filepath.Join(home, fallback)
				} else if dir, err = os.Getwd(); err != nil {
					dir = "."
				}
			}

			return filepath.Join(dir, basePrefix())
		},
	)
}

//nolint:gochecknoglobals
var (
	// configDir returns the directory holding the settings file.
	configDir = userDir(os.UserConfigDir, ".config")

	// cacheDir returns the directory used for transient files such as
	// browse history and profiles.
	cacheDir = userDir(os.UserCacheDir, ".cache")
)

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
