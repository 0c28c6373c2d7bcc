package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gedcheck/internal/config"
	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/logging"
	"github.com/thoreinstein/gedcheck/internal/model"
	"github.com/thoreinstein/gedcheck/internal/snapshot"
	"github.com/thoreinstein/gedcheck/internal/validate"
)

// checkOptions are the per-invocation settings shared by the commands that
// run the validator.
type checkOptions struct {
	inputFormat string
	autoRepair  bool
	threshold   validate.Severity
	defaults    validate.RepairDefaults
}

// checkResult is a loaded document and the findings of one validation pass.
type checkResult struct {
	doc      *model.Gedcom
	format   snapshot.Format
	findings *validate.Findings
}

// blocking counts findings that fail the command. Repair notes never block,
// so the floor is WARNING regardless of the report threshold.
func (r *checkResult) blocking(threshold validate.Severity) int {
	return r.findings.CountAtLeast(max(threshold, validate.SeverityWarning))
}

// resolveOptions merges appConfig with any flags the user set explicitly.
func resolveOptions(cmd *cobra.Command, cfg *config.Config, autoRepair bool, minSeverity, inputFormat string) (checkOptions, error) {
	opts := checkOptions{
		inputFormat: inputFormat,
		autoRepair:  cfg.AutoRepair,
		defaults:    cfg.RepairDefaults(),
	}

	threshold, err := cfg.Threshold()
	if err != nil {
		return opts, errors.NewConfigError(err)
	}
	opts.threshold = threshold

	if f := cmd.Flags().Lookup("autorepair"); f != nil && f.Changed {
		opts.autoRepair = autoRepair
	}
	if f := cmd.Flags().Lookup("min-severity"); f != nil && f.Changed {
		s, err := validate.ParseSeverity(minSeverity)
		if err != nil {
			return opts, errors.NewUserError(err, "Valid severities: info, warning, error")
		}
		opts.threshold = s
	}
	return opts, nil
}

// runCheck loads path and validates it.
func runCheck(cmd *cobra.Command, path string, opts checkOptions) (*checkResult, error) {
	logger := logging.FromContext(cmd.Context())

	var format snapshot.Format
	if opts.inputFormat != "" {
		f, err := snapshot.ParseFormat(opts.inputFormat)
		if err != nil {
			return nil, errors.NewUserError(err, "Valid input formats: yaml, json, toml")
		}
		format = f
	}

	doc, format, err := snapshot.Load(path, format)
	if err != nil {
		if errors.Is(err, snapshot.ErrUnsupportedFormat) {
			return nil, errors.NewUserError(err, "Pass --input-format yaml, json or toml")
		}
		return nil, errors.NewUserError(err, "Check that the file exists and is a valid snapshot")
	}
	logger.Debug("document loaded",
		"path", path,
		"format", format,
		"submitters", len(doc.Submitters),
	)

	v := validate.New(doc,
		validate.WithAutoRepair(opts.autoRepair),
		validate.WithThreshold(opts.threshold),
		validate.WithRepairDefaults(opts.defaults),
		validate.WithLogger(logger),
	)
	if err := v.Validate(); err != nil {
		return nil, errors.NewSystemError(err, "")
	}

	return &checkResult{
		doc:      doc,
		format:   format,
		findings: v.Findings(),
	}, nil
}
