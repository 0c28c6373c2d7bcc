package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/logging"
	"github.com/thoreinstein/gedcheck/internal/validate"
)

var (
	browseAutoRepair  bool
	browseMinSeverity string
	browseInputFormat string
)

func init() {
	browseCmd.Flags().BoolVar(&browseAutoRepair, "autorepair", false,
		"repair defects in memory before browsing")
	browseCmd.Flags().StringVar(&browseMinSeverity, "min-severity", "",
		"lowest severity to list: info, warning, error (default from config)")
	browseCmd.Flags().StringVar(&browseInputFormat, "input-format", "",
		"snapshot format: yaml, json, toml (default from file extension)")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Explore findings interactively",
	Long: `Browse validates a document and opens a fuzzy finder over the findings.
The preview pane shows the offending part of the document.

Requires an interactive terminal.`,
	Example: `  gedcheck browse family.yaml
  gedcheck browse --min-severity warning export.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !logging.IsTTY(out) {
		return errors.NewUserError(errors.New("browse requires an interactive terminal"), "Run: gedcheck validate "+args[0])
	}

	opts, err := resolveOptions(cmd, appConfig, browseAutoRepair, browseMinSeverity, browseInputFormat)
	if err != nil {
		return err
	}

	result, err := runCheck(cmd, args[0], opts)
	if err != nil {
		return err
	}

	return browseFindings(out, visibleFindings(result.findings))
}

// visibleFindings returns the findings at or above the collector threshold.
func visibleFindings(findings *validate.Findings) []validate.Finding {
	var visible []validate.Finding
	for _, f := range findings.All() {
		if f.Severity >= findings.Threshold() {
			visible = append(visible, f)
		}
	}
	return visible
}

func browseFindings(w io.Writer, findings []validate.Finding) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		findings,
		func(i int) string {
			return findingLabel(findings[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return findingPreview(findings[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive browse failed")
	}

	fmt.Fprintln(w, findingPreview(findings[idx]))
	return nil
}

// findingLabel is the single line shown in the finder list.
func findingLabel(f validate.Finding) string {
	label := fmt.Sprintf("%-7s %s", f.Severity, f.Message)
	if subject := f.SubjectDescription(); subject != "" {
		label += " (" + subject + ")"
	}
	return label
}

// findingPreview describes f and renders its subject as YAML.
func findingPreview(f validate.Finding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Severity: %s\n", f.Severity)
	fmt.Fprintf(&sb, "Message:  %s\n", f.Message)
	if subject := f.SubjectDescription(); subject != "" {
		fmt.Fprintf(&sb, "Subject:  %s\n", subject)
	}
	if f.Subject == nil {
		return sb.String()
	}

	data, err := yaml.Marshal(f.Subject)
	if err != nil {
		fmt.Fprintf(&sb, "\n(cannot render subject: %v)\n", err)
		return sb.String()
	}
	sb.WriteString("\n")
	sb.Write(data)
	return sb.String()
}
