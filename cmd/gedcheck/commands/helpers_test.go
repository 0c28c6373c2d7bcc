package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/gedcheck/internal/config"
)

const validYAML = `header:
  character_set:
    name: ANSEL
  copyright_data: []
  gedcom_version:
    version_number: 5.5.1
    form: LINEAGE-LINKED
  submitter: "@SUBM0001@"
submitters:
  - xref: "@SUBM0001@"
    name: test
trailer: {}
`

// missingCharsetYAML lacks a header character set, an ERROR that auto-repair
// fixes.
const missingCharsetYAML = `header:
  copyright_data: []
  gedcom_version:
    version_number: 5.5.1
    form: LINEAGE-LINKED
  submitter: "@SUBM0001@"
submitters:
  - xref: "@SUBM0001@"
    name: test
trailer: {}
`

const missingCharsetTOML = `[header]
copyright_data = []
submitter = "@SUBM0001@"

[header.gedcom_version]
version_number = "5.5.1"
form = "LINEAGE-LINKED"

[[submitters]]
xref = "@SUBM0001@"
name = "test"

[trailer]
`

// newTestEnv isolates config lookup and backups from the developer's machine
// and returns the config directory and a working directory.
func newTestEnv(t *testing.T) (configDir, workDir string) {
	t.Helper()
	configDir = t.TempDir()
	workDir = t.TempDir()
	t.Setenv(config.ConfigDirEnv, configDir)
	t.Setenv(config.EnvPrefix+"_BACKUP_DIR", t.TempDir())
	t.Setenv(debugEnv, "")
	t.Setenv("FORCE_COLOR", "0")
	t.Chdir(workDir)
	return configDir, workDir
}

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// resetFlags restores every flag to its default so commands can run more
// than once per test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs gedcheck with args and returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
