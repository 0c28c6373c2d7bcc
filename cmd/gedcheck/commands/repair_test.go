package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/snapshot"
)

func TestRepair_InPlace(t *testing.T) {
	_, dir := newTestEnv(t)
	path := writeFile(t, dir, "family.yaml", missingCharsetYAML)

	out, err := executeCommand(t, "repair", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Header character set was not specified - repaired")
	assert.Contains(t, out, "repair(s) written to "+path)

	doc, _, err := snapshot.Load(path, "")
	require.NoError(t, err)
	require.NotNil(t, doc.Header.CharacterSet)
	assert.Equal(t, "ANSEL", doc.Header.CharacterSet.CharacterSetName.Value)

	// The repaired file validates cleanly.
	_, err = executeCommand(t, "validate", path)
	require.NoError(t, err)
}

func TestRepair_ConfiguredDefault(t *testing.T) {
	configDir, dir := newTestEnv(t)
	writeFile(t, configDir, "config.yaml", "version: 1\nrepair:\n  character_set_name: UTF-8\n")
	path := writeFile(t, dir, "family.yaml", missingCharsetYAML)

	_, err := executeCommand(t, "repair", path)
	require.NoError(t, err)

	doc, _, err := snapshot.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", doc.Header.CharacterSet.CharacterSetName.Value)
}

func TestRepair_DryRun(t *testing.T) {
	_, dir := newTestEnv(t)
	path := writeFile(t, dir, "family.yaml", missingCharsetYAML)

	out, err := executeCommand(t, "repair", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "repaired")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, missingCharsetYAML, string(data))
}

func TestRepair_NothingToRepair(t *testing.T) {
	_, dir := newTestEnv(t)
	path := writeFile(t, dir, "family.yaml", validYAML)

	out, err := executeCommand(t, "repair", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "written to")
	assert.Contains(t, out, "nothing to repair in "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, validYAML, string(data))
}

func TestRepair_NothingToRepairStillWritesOutput(t *testing.T) {
	_, dir := newTestEnv(t)
	path := writeFile(t, dir, "family.yaml", validYAML)
	output := filepath.Join(dir, "family.json")

	out, err := executeCommand(t, "repair", "-o", output, path)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to repair, document written to "+output)

	doc, format, err := snapshot.Load(output, "")
	require.NoError(t, err)
	assert.Equal(t, snapshot.FormatJSON, format)
	require.NotNil(t, doc.Header.Submitter)
	assert.Equal(t, "@SUBM0001@", doc.Header.Submitter.Xref)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, validYAML, string(data), "the input is left alone")
}

func TestRepair_TOMLInput(t *testing.T) {
	_, dir := newTestEnv(t)
	path := writeFile(t, dir, "legacy.toml", missingCharsetTOML)

	_, err := executeCommand(t, "repair", path)
	require.Error(t, err, "TOML snapshots cannot be written")
	assert.True(t, errors.Is(err, snapshot.ErrUnsupportedFormat))
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	output := filepath.Join(dir, "family.json")
	_, err = executeCommand(t, "repair", "-o", output, path)
	require.NoError(t, err)

	doc, format, err := snapshot.Load(output, "")
	require.NoError(t, err)
	assert.Equal(t, snapshot.FormatJSON, format)
	assert.Equal(t, "ANSEL", doc.Header.CharacterSet.CharacterSetName.Value)
	assert.Same(t, doc.Submitters["@SUBM0001@"], doc.Header.Submitter)
}

func TestRepair_OutputFormatOverride(t *testing.T) {
	_, dir := newTestEnv(t)
	path := writeFile(t, dir, "family.yaml", missingCharsetYAML)
	output := filepath.Join(dir, "family.out")

	_, err := executeCommand(t, "repair", "-o", output, "--output-format", "json", path)
	require.NoError(t, err)

	_, format, err := snapshot.Load(output, snapshot.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, snapshot.FormatJSON, format)
}

func TestRepair_UnrepairableDefect(t *testing.T) {
	configDir, dir := newTestEnv(t)
	writeFile(t, configDir, "config.yaml", "version: 1\nrepair:\n  character_set_name: \"\"\n")
	path := writeFile(t, dir, "family.yaml", missingCharsetYAML)

	out, err := executeCommand(t, "repair", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidationFailed))
	assert.Contains(t, out, "Header character set not specified")
	assert.NotContains(t, out, "written to")
}
