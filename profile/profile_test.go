package profile

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/catalog/log"
)

func TestSession_StartNoop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session Session
	}{
		{"disabled", Session{}},
		{"disabled_with_dir", Session{Dir: t.TempDir(), Quiet: true}},
		{"unsupported", Session{Mode: "bogus", Dir: t.TempDir(), Quiet: true}},
	}

	for _, tt := range tests {
		p := tt.session.Start(context.Background(), log.Logger{})
		if _, ok := p.(ignore); !ok {
			t.Errorf("%s: Start() = %T, want ignore", tt.name, p)
		}

		p.Stop()
	}
}

func TestDefaultDir(t *testing.T) {
	t.Parallel()

	cache := filepath.Join("home", "me", ".cache", "catalog")
	if got, want := DefaultDir(cache), filepath.Join(cache, Tag); got != want {
		t.Errorf("DefaultDir() = %q, want %q", got, want)
	}
}

func TestEnum(t *testing.T) {
	t.Parallel()

	enum := Enum()
	if !strings.HasPrefix(enum, ",") {
		t.Errorf("Enum() = %q, want a leading empty choice", enum)
	}

	choices := strings.Split(enum, ",")[1:]
	if len(Modes()) == 0 {
		if enum != "," {
			t.Errorf("Enum() = %q without modes, want %q", enum, ",")
		}

		return
	}

	if strings.Join(choices, ",") != strings.Join(Modes(), ",") {
		t.Errorf("Enum() = %q, want the modes %v", enum, Modes())
	}
}
