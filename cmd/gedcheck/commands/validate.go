package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/validate"
)

var (
	validateAutoRepair  bool
	validateFormat      string
	validateMinSeverity string
	validateInputFormat string
)

func init() {
	validateCmd.Flags().BoolVar(&validateAutoRepair, "autorepair", false,
		"repair defects in memory and report them as info (the file is not written)")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"report format: text, json (default from config)")
	validateCmd.Flags().StringVar(&validateMinSeverity, "min-severity", "",
		"lowest severity to report: info, warning, error (default from config)")
	validateCmd.Flags().StringVar(&validateInputFormat, "input-format", "",
		"snapshot format: yaml, json, toml (default from file extension)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a document for structural defects",
	Long: `Validate loads a document snapshot and reports every defect found in
its header, submitters and trailer.

The command exits non-zero when any WARNING or ERROR at or above the
minimum severity is reported. With --autorepair, defects that have a
safe default are fixed in memory and reported as INFO instead.`,
	Example: `  gedcheck validate family.yaml
  gedcheck validate --format json export.json
  gedcheck validate --autorepair --min-severity warning family.yaml

  See Also: gedcheck repair`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd, appConfig, validateAutoRepair, validateMinSeverity, validateInputFormat)
	if err != nil {
		return err
	}

	format, err := reportFormat(cmd, validateFormat)
	if err != nil {
		return err
	}

	result, err := runCheck(cmd, args[0], opts)
	if err != nil {
		return err
	}

	reporter := validate.NewReporter(cmd.OutOrStdout(), format)
	if err := reporter.Report(result.findings); err != nil {
		return errors.NewSystemError(err, "")
	}

	if n := result.blocking(opts.threshold); n > 0 {
		return errors.NewValidationError(n)
	}
	return nil
}

// reportFormat returns the --format flag when set, otherwise the configured
// report format.
func reportFormat(cmd *cobra.Command, flagValue string) (validate.Format, error) {
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		format, err := validate.ParseFormat(flagValue)
		if err != nil {
			return format, errors.NewUserError(err, "Valid formats: text, json")
		}
		return format, nil
	}
	format, err := appConfig.ReportFormat()
	if err != nil {
		return format, errors.NewConfigError(err)
	}
	return format, nil
}
