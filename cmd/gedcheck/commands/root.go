// Package commands implements the CLI commands for gedcheck.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gedcheck/cmd"
	"github.com/thoreinstein/gedcheck/internal/config"
	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/logging"
	"github.com/thoreinstein/gedcheck/internal/paths"
)

// debugEnv raises verbosity when no -v flag is given: 1 or true is Debug,
// 2 is Trace.
const debugEnv = "GEDCHECK_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// appConfig is the configuration loaded before any subcommand runs.
var appConfig = config.Default()

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		`also write logs to this file as JSON ("default" for `+paths.LogFile()+`)`)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml, then "+paths.ConfigFile()+")")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("gedcheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "gedcheck",
	Short: "Validate and repair genealogical documents",
	Long: `gedcheck checks a genealogical document graph for structural defects:
a missing or unsupported character set, uninitialized custom tag
collections, a missing copyright collection, absent submitters and more.

Documents are read from YAML, JSON or TOML snapshots. With auto-repair,
defects that have a safe default are fixed in place and reported as
informational findings.`,
	Example: `  # Check a document
  gedcheck validate family.yaml

  # Fix what can be fixed and write the result back
  gedcheck repair family.yaml

  # Explore findings interactively
  gedcheck browse family.json

  See Also: gedcheck config show`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}

	if logFile != "" {
		path := logFile
		if path == "default" {
			path = paths.LogFile()
			if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
				return errors.NewSystemError(errors.Wrap(err, "creating log directory"), "Pass an explicit --log-file path")
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check that the --log-file directory exists and is writable")
		}
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)
	logging.ConfigureColor(cmd.OutOrStdout())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadConfig reads the config file into appConfig. Help and version never
// fail on a bad config.
func loadConfig(cmd *cobra.Command) error {
	config.Init()
	cfg, err := config.Load(configPath)
	if err != nil {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return errors.NewConfigError(err)
	}
	appConfig = cfg

	logging.FromContext(cmd.Context()).Debug("config loaded",
		"file", config.FileUsed(),
		"autorepair", cfg.AutoRepair,
		"min_severity", cfg.MinSeverity,
	)
	return nil
}

// PrintError writes err and its suggestion, if any, to w.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("Suggestion:"), exitErr.Suggestion)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
