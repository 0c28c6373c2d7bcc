// Package paths resolves the gedcheck directories under the XDG base
// directories, using github.com/adrg/xdg for per-OS defaults.
//
//	paths.ConfigDir()  // ~/.config/gedcheck on Linux
//	paths.ConfigFile() // ~/.config/gedcheck/config.yaml
//	paths.LogFile()    // ~/.local/state/gedcheck/gedcheck.log
//
// XDG_CONFIG_HOME and XDG_STATE_HOME are honored when set before the process
// starts; tests that change them must call xdg.Reload.
package paths
