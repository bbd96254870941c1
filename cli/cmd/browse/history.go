package browse

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// History records pinned section names, oldest first, with file
// persistence. A History without a path is kept in memory only.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Write appends name to the history. An earlier occurrence of the same name
// is removed, so each name appears once.
func (h *History) Write(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == name {
		return nil
	}

	idx := slices.Index(h.entries, name)
	if idx >= 0 {
		h.entries = slices.Delete(h.entries, idx, idx+1)
	}

	h.entries = append(h.entries, name)

	if h.path == "" {
		return nil
	}

	// If we removed a duplicate, rewrite the entire file
	// Otherwise, just append
	if idx >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(name + "\n")

	return err
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// Recent returns the most recently written entry accepted by keep.
func (h *History) Recent(keep func(string) bool) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, name := range slices.Backward(h.entries) {
		if keep(name) {
			return name, true
		}
	}

	return "", false
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, name := range h.entries {
		if _, err := w.WriteString(name + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}
