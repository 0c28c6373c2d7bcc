package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gedcheck/internal/config"
	"github.com/thoreinstein/gedcheck/internal/editor"
	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/paths"
	"github.com/thoreinstein/gedcheck/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect gedcheck configuration",
	Long: `Inspect the configuration gedcheck runs with.

Settings come from ./config.yaml or the user config directory, overridden
by GEDCHECK_* environment variables. Without a subcommand, shows the
effective configuration.`,
	Example: `  # Show effective configuration
  gedcheck config

  # Read one value
  gedcheck config get repair.character_set_name

  # Write a starter config file
  gedcheck config init

  See Also: gedcheck validate`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the effective configuration in YAML format, after file and environment overrides.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Nested keys use dot notation.`,
	Example: `  gedcheck config get autorepair
  gedcheck config get repair.gedcom_version`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Long: `Print the config file in use, or the default location when no file
was found.`,
	RunE: runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long:  `Write the default configuration to the user config directory.`,
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the config file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi.`,
	Example: `  EDITOR=nano gedcheck config edit

  See Also: gedcheck config init`,
	RunE: runConfigEdit,
}

func runConfigShow(c *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	w := c.OutOrStdout()
	if used := config.FileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	} else {
		fmt.Fprintln(w, "# defaults (no config file found)")
	}
	fmt.Fprint(w, string(data))
	return nil
}

func runConfigGet(c *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Run: gedcheck config show")
	}
	fmt.Fprintln(c.OutOrStdout(), viper.GetString(key))
	return nil
}

// configTarget returns the file in use, falling back to the directory named
// by GEDCHECK_CONFIG_DIR and then the XDG location.
func configTarget() string {
	if used := config.FileUsed(); used != "" {
		return used
	}
	if dir := os.Getenv(config.ConfigDirEnv); dir != "" {
		return filepath.Join(dir, paths.ConfigFileName)
	}
	return paths.ConfigFile()
}

func runConfigPath(c *cobra.Command, _ []string) error {
	fmt.Fprintln(c.OutOrStdout(), configTarget())
	return nil
}

func runConfigInit(c *cobra.Command, _ []string) error {
	target := configTarget()

	if _, err := os.Stat(target); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", target), "Pass --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(target), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := fileutil.AtomicWriteFile(target, data, fileutil.DefaultPerm); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	fmt.Fprintf(c.OutOrStdout(), "Wrote %s\n", target)
	return nil
}

func runConfigEdit(c *cobra.Command, _ []string) error {
	target := config.FileUsed()
	if target == "" {
		return errors.NewUserError(errors.New("no config file found"), "Run: gedcheck config init")
	}

	fmt.Fprintf(c.ErrOrStderr(), "Editing %s\n", target)
	return editor.Open(c.Context(), target, editor.Streams{
		In:  c.InOrStdin(),
		Out: c.OutOrStdout(),
		Err: c.ErrOrStderr(),
	})
}
