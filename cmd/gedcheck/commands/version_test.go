package commands

import (
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/gedcheck/cmd"
)

func TestVersionCommand(t *testing.T) {
	newTestEnv(t)

	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{
		"gedcheck version " + cmd.Version,
		"commit:   " + cmd.Commit,
		"built:    " + cmd.Date,
		"go:       " + runtime.Version(),
		"charsets: ANSEL, ASCII, UNICODE, UTF-8",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand_IgnoresBadConfig(t *testing.T) {
	configDir, _ := newTestEnv(t)
	writeFile(t, configDir, "config.yaml", "version: 7\n")

	if _, err := executeCommand(t, "version"); err != nil {
		t.Fatalf("version should not fail on a bad config: %v", err)
	}
}

func TestVersionCommand_Ldflags(t *testing.T) {
	newTestEnv(t)

	origVersion, origCommit := cmd.Version, cmd.Commit
	defer func() { cmd.Version, cmd.Commit = origVersion, origCommit }()
	cmd.Version, cmd.Commit = "1.2.3", "abc1234"

	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "gedcheck version 1.2.3") || !strings.Contains(out, "abc1234") {
		t.Errorf("ldflags values not reported:\n%s", out)
	}
}
