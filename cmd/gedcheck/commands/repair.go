package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gedcheck/cmd"
	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/logging"
	"github.com/thoreinstein/gedcheck/internal/snapshot"
	"github.com/thoreinstein/gedcheck/internal/validate"
)

var (
	repairOutput       string
	repairOutputFormat string
	repairFormat       string
	repairMinSeverity  string
	repairInputFormat  string
	repairDryRun       bool
	repairNoBackup     bool
)

func init() {
	repairCmd.Flags().StringVarP(&repairOutput, "output", "o", "",
		"write the repaired document here instead of replacing the input")
	repairCmd.Flags().StringVar(&repairOutputFormat, "output-format", "",
		"snapshot format to write: yaml, json (default from output extension)")
	repairCmd.Flags().StringVarP(&repairFormat, "format", "f", "",
		"report format: text, json (default from config)")
	repairCmd.Flags().StringVar(&repairMinSeverity, "min-severity", "",
		"lowest severity to report: info, warning, error (default from config)")
	repairCmd.Flags().StringVar(&repairInputFormat, "input-format", "",
		"snapshot format: yaml, json, toml (default from file extension)")
	repairCmd.Flags().BoolVar(&repairDryRun, "dry-run", false,
		"report the repairs without writing anything")
	repairCmd.Flags().BoolVar(&repairNoBackup, "no-backup", false,
		"do not back up the input before overwriting it")
	rootCmd.AddCommand(repairCmd)
}

var repairCmd = &cobra.Command{
	Use:   "repair <file>",
	Short: "Apply safe defaults to a document and save it",
	Long: `Repair validates a document with auto-repair enabled and writes the
result back, either over the input or to --output.

Every repair is reported as INFO. Defects with no safe default, such as
a submitter without an xref, remain WARNING or ERROR and make the
command exit non-zero after the file is written.

Before the input is overwritten it is backed up; see gedcheck backup.
TOML snapshots are read-only; pass --output with a .yaml or .json path
to repair one.`,
	Example: `  gedcheck repair family.yaml
  gedcheck repair legacy.toml -o family.yaml
  gedcheck repair --dry-run family.json

  See Also: gedcheck validate`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func runRepair(c *cobra.Command, args []string) error {
	logger := logging.FromContext(c.Context())

	opts, err := resolveOptions(c, appConfig, true, repairMinSeverity, repairInputFormat)
	if err != nil {
		return err
	}
	opts.autoRepair = true

	format, err := reportFormat(c, repairFormat)
	if err != nil {
		return err
	}

	output := repairOutput
	if output == "" {
		output = args[0]
	}

	var outFormat snapshot.Format
	if repairOutputFormat != "" {
		outFormat, err = snapshot.ParseFormat(repairOutputFormat)
		if err != nil {
			return errors.NewUserError(err, "Valid output formats: yaml, json")
		}
	}

	result, err := runCheck(c, args[0], opts)
	if err != nil {
		return err
	}

	if outFormat == "" {
		if repairOutput == "" {
			outFormat = result.format
		} else if outFormat, err = snapshot.FormatFromPath(output); err != nil {
			return errors.NewUserError(err, "Pass --output-format yaml or json")
		}
	}

	reporter := validate.NewReporter(c.OutOrStdout(), format)
	if err := reporter.Report(result.findings); err != nil {
		return errors.NewSystemError(err, "")
	}

	repairs := result.findings.Count(validate.SeverityInfo)
	announce := format == validate.FormatText && !quiet
	switch {
	case repairDryRun:
		logger.Info("dry run, nothing written", "repairs", repairs)
	case repairs == 0 && output == args[0]:
		logger.Info("nothing to repair", "path", args[0])
		if announce {
			fmt.Fprintf(c.OutOrStdout(), "%s nothing to repair in %s\n", color.GreenString("✓"), args[0])
		}
	case outFormat == snapshot.FormatTOML:
		return errors.NewUserError(
			errors.Wrapf(snapshot.ErrUnsupportedFormat, "cannot write %q", outFormat),
			"Pass --output with a .yaml or .json path",
		)
	default:
		if output == args[0] && appConfig.Backup.Enabled && !repairNoBackup {
			manifest, err := appConfig.BackupManager(cmd.Version).Backup(args[0])
			if err != nil {
				return errors.NewSystemError(errors.Wrap(err, "backing up document"), "Pass --no-backup to skip the backup")
			}
			logger.Info("document backed up", "path", args[0], "id", manifest.ID)
		}
		if err := snapshot.Save(output, result.doc, outFormat); err != nil {
			return errors.NewSystemError(err, "Check that the output directory is writable")
		}
		logger.Info("document saved", "path", output, "repairs", repairs)
		switch {
		case !announce:
		case repairs == 0:
			fmt.Fprintf(c.OutOrStdout(), "%s nothing to repair, document written to %s\n",
				color.GreenString("✓"), output)
		default:
			fmt.Fprintf(c.OutOrStdout(), "%s %d repair(s) written to %s\n",
				color.GreenString("✓"), repairs, output)
		}
	}

	if n := result.blocking(opts.threshold); n > 0 {
		return errors.NewValidationError(n)
	}
	return nil
}
