package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/catalog"
)

func TestResolve_ReferencesInSettings(t *testing.T) {
	t.Parallel()

	settings := `
[config]
notes = "/home/me/notes"
file = "{notes}/catalog.toml"
log_level = "debug"
jobs = 4
silent = true

[other]
file = "ignored"
`

	r, err := resolve(context.Background(), settingsSection)(strings.NewReader(settings))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	cfg, ok := r.(config)
	if !ok {
		t.Fatalf("resolver is %T, want config", r)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"file", "/home/me/notes/catalog.toml"},
		{"log-level", "debug"},
		{"jobs", "4"},
		{"silent", true},
		{"validate", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			got, err := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.flag, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_InvalidSettingsIgnored(t *testing.T) {
	t.Parallel()

	for name, settings := range map[string]string{
		"cycle":          "[config]\na = \"{b}\"\nb = \"{a}\"\n",
		"syntax":         "[config\n",
		"missing":        "[elsewhere]\nfile = \"x\"\n",
		"empty":          "",
		"top-level keys": "file = \"x\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := resolve(context.Background(), settingsSection)(strings.NewReader(settings))
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}

			if cfg, ok := r.(config); !ok || len(cfg) != 0 {
				t.Errorf("resolver = %#v, want empty config", r)
			}
		})
	}
}

func TestSectionToConfig(t *testing.T) {
	t.Parallel()

	cfg := sectionToConfig(catalog.Section{
		"ratio": catalog.FloatValue(0.5),
		"count": catalog.IntegerValue(-3),
		"name":  catalog.StringValue("x"),
		"on":    catalog.BooleanValue(false),
	})

	want := config{"ratio": "0.5", "count": "-3", "name": "x", "on": false}

	for k, v := range want {
		if cfg[k] != v {
			t.Errorf("cfg[%q] = %#v, want %#v", k, cfg[k], v)
		}
	}
}
