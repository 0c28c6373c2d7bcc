package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gedcheck/internal/config"
	"github.com/thoreinstein/gedcheck/internal/errors"
)

func TestConfigShow_Defaults(t *testing.T) {
	newTestEnv(t)

	out, err := executeCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# defaults (no config file found)")

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	want := *config.Default()
	want.Backup.Dir = os.Getenv(config.EnvPrefix + "_BACKUP_DIR")
	assert.Equal(t, want, cfg)
}

func TestConfigShow_FileAndEnv(t *testing.T) {
	configDir, _ := newTestEnv(t)
	path := writeFile(t, configDir, "config.yaml", "version: 1\nformat: json\n")
	t.Setenv("GEDCHECK_MIN_SEVERITY", "warning")

	out, err := executeCommand(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "warning", cfg.MinSeverity)
}

func TestConfigGet(t *testing.T) {
	configDir, _ := newTestEnv(t)
	writeFile(t, configDir, "config.yaml", "version: 1\nrepair:\n  gedcom_version: \"7.0\"\n")

	out, err := executeCommand(t, "config", "get", "repair.gedcom_version")
	require.NoError(t, err)
	assert.Equal(t, "7.0\n", out)

	out, err = executeCommand(t, "config", "get", "autorepair")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = executeCommand(t, "config", "get", "nope")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestConfigPath(t *testing.T) {
	configDir, workDir := newTestEnv(t)

	out, err := executeCommand(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "config.yaml")+"\n", out)

	local := writeFile(t, workDir, "config.yaml", "version: 1\n")
	out, err = executeCommand(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(out[:len(out)-1]))
	assert.FileExists(t, local)
}

func TestConfigInit(t *testing.T) {
	configDir, _ := newTestEnv(t)
	target := filepath.Join(configDir, "config.yaml")

	out, err := executeCommand(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, *config.Default(), cfg)

	_, err = executeCommand(t, "config", "init")
	require.Error(t, err, "existing file must not be overwritten")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	_, err = executeCommand(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigEdit_NoFile(t *testing.T) {
	newTestEnv(t)

	_, err := executeCommand(t, "config", "edit")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestConfig_ExplicitPathMissing(t *testing.T) {
	_, dir := newTestEnv(t)

	_, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "config", "show")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestConfigEdit_RunsEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	configDir, _ := newTestEnv(t)
	target := writeFile(t, configDir, "config.yaml", "version: 1\n")

	script := writeFile(t, t.TempDir(), "fake-editor", "#!/bin/sh\necho 'autorepair: true' >> \"$1\"\n")
	require.NoError(t, os.Chmod(script, 0o755))
	t.Setenv("EDITOR", script)

	_, err := executeCommand(t, "config", "edit")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\nautorepair: true\n", string(data))
}
