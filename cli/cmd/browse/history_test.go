package browse

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_WriteDeduplicates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")
	h := NewHistory(path)

	for _, name := range []string{"a", "b", "b", " ", "a", "c"} {
		if err := h.Write(name); err != nil {
			t.Fatalf("Write(%q) error = %v", name, err)
		}
	}

	want := []string{"b", "a", "c"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	if h.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", h.Len(), len(want))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if got := string(data); got != "b\na\nc\n" {
		t.Errorf("file = %q, want %q", got, "b\na\nc\n")
	}
}

func TestHistory_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("one\n\n  two  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := h.Entries(), []string{"one", "two"}; !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_LoadMissing(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_MemoryOnly(t *testing.T) {
	t.Parallel()

	h := NewHistory("")
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := h.Write("x"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_Recent(t *testing.T) {
	t.Parallel()

	h := NewHistory("")
	for _, name := range []string{"a", "b", "c"} {
		_ = h.Write(name)
	}

	got, ok := h.Recent(func(s string) bool { return s != "c" })
	if !ok || got != "b" {
		t.Errorf("Recent() = (%q, %v), want (%q, true)", got, ok, "b")
	}

	if _, ok := h.Recent(func(string) bool { return false }); ok {
		t.Error("Recent() found an entry none of which are kept")
	}
}
