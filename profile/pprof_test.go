//go:build pprof

package profile

import (
	"slices"
	"testing"
)

func TestModes(t *testing.T) {
	t.Parallel()

	got := Modes()
	if !slices.IsSorted(got) {
		t.Errorf("Modes() = %v, want sorted", got)
	}

	for _, want := range []string{"cpu", "heap", "trace"} {
		if !slices.Contains(got, want) {
			t.Errorf("Modes() = %v, missing %q", got, want)
		}
	}

	if slices.Contains(got, "quiet") {
		t.Errorf("Modes() = %v, quiet is not a mode", got)
	}
}
