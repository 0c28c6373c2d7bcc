// Package editor launches the user's text editor on a file gedcheck manages.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoEditor is returned when the editor command is blank.
var ErrNoEditor = errors.New("no editor configured")

// Streams are the terminal the editor runs on.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs the detected editor on path and waits for it to exit.
func Open(ctx context.Context, path string, s Streams) error {
	return Run(ctx, Detect(), path, s)
}

// Run runs editor on path. editor may carry arguments, as in
// EDITOR="code --wait".
func Run(ctx context.Context, editor, path string, s Streams) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", fields[0])
	}
	return nil
}

// Detect returns the editor command: $EDITOR, then $VISUAL, then nano when
// installed, then vi.
func Detect() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			return v
		}
	}
	if _, err := lookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}

// Stubbed in tests.
var (
	getenv   = os.Getenv
	lookPath = exec.LookPath
)
