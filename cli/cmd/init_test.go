package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catalog/catalog"
)

// initFlags stands in for the global flags of the command line.
type initFlags struct {
	File   string `default:"notes.toml" name:"file"`
	Jobs   int    `default:"4"          name:"jobs"`
	Silent bool   `name:"silent"`
	Empty  string `name:"empty"`
	Secret string `default:"hidden"     hidden:""    name:"secret"`
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.toml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli initFlags

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			// The generated file must itself be a valid catalog.
			doc, err := catalog.ParseFile(ctx, confPath)
			if err != nil {
				t.Fatalf("generated settings are not a valid catalog: %v", err)
			}

			sec, err := doc.Lookup(ConfigIdentifier)
			if err != nil {
				t.Fatal(err)
			}

			want := map[string]string{
				"file":   "notes.toml",
				"jobs":   "4",
				"silent": "false",
			}

			for field, value := range want {
				v, err := sec.Lookup(field)
				if err != nil {
					t.Errorf("field %q: %v", field, err)

					continue
				}

				if v.String() != value {
					t.Errorf("field %q = %q, want %q", field, v.String(), value)
				}
			}

			for _, field := range []string{"help", "empty", "secret"} {
				if _, ok := sec[field]; ok {
					t.Errorf("field %q should not be written", field)
				}
			}
		})
	}
}
