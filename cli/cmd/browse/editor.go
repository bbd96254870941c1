package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/catalog/catalog"
	"github.com/ardnew/catalog/log"
)

const defaultEditor = "vi"

// editSourceCommand implements [tea.ExecCommand] for the edit-resolve-retry
// loop. It opens the catalog file in the user's editor and resolves the
// result. On error the user is prompted to re-edit; declining returns the
// last error, and the previous document stays in use.
type editSourceCommand struct {
	path      string
	ctxFunc   func() context.Context
	parseOpts []catalog.Option
	logger    log.Logger
	doc       catalog.Document
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSourceCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSourceCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSourceCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-resolve-retry loop.
func (c *editSourceCommand) Run() error {
	ctx := c.ctxFunc()

	for {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.path); err != nil {
			return err
		}

		doc, err := catalog.ParseFile(ctx, c.path, c.parseOpts...)
		c.logger.TraceContext(
			ctx,
			"editor resolve attempt",
			slog.String("path", c.path),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			c.doc = doc

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return err
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return err
		}
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	// allow "code --wait" and similar
	args := strings.Fields(os.Getenv("VISUAL"))
	if len(args) == 0 {
		args = strings.Fields(os.Getenv("EDITOR"))
	}

	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
