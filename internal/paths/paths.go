package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "gedcheck"

// ConfigFileName is the name of the config file searched for in the
// current directory and in ConfigDir.
const ConfigFileName = "config.yaml"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func StateHome() string {
	return xdg.StateHome
}

// ConfigDir returns <ConfigHome>/gedcheck.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the user-level config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFile returns the default location of the JSON log file written by
// --log-file without an explicit path.
func LogFile() string {
	return filepath.Join(StateHome(), AppName, AppName+".log")
}

// BackupDir returns the root directory for document backups taken before an
// in-place repair.
func BackupDir() string {
	return filepath.Join(StateHome(), AppName, "backups")
}
