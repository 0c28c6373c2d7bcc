package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// Reporter formats and writes findings.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the findings to the output.
func (r *Reporter) Report(findings *Findings) error {
	if findings == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(findings)
	default:
		return r.reportText(findings)
	}
}

type jsonFinding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Subject  string   `json:"subject,omitempty"`
}

type jsonSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

type jsonReport struct {
	Valid    bool          `json:"valid"`
	Summary  jsonSummary   `json:"summary"`
	Findings []jsonFinding `json:"findings"`
}

// reportJSON writes the findings as JSON. The summary counts every finding;
// the list holds those at or above the threshold.
func (r *Reporter) reportJSON(findings *Findings) error {
	report := jsonReport{
		Valid: !findings.HasErrors() && !findings.HasWarnings(),
		Summary: jsonSummary{
			Errors:   findings.Count(SeverityError),
			Warnings: findings.Count(SeverityWarning),
			Info:     findings.Count(SeverityInfo),
		},
		Findings: make([]jsonFinding, 0, findings.Len()),
	}
	for _, f := range findings.All() {
		if f.Severity < findings.Threshold() {
			continue
		}
		report.Findings = append(report.Findings, jsonFinding{
			Severity: f.Severity,
			Message:  f.Message,
			Subject:  f.SubjectDescription(),
		})
	}

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

// reportText writes the findings as human-readable text.
func (r *Reporter) reportText(findings *Findings) error {
	errs := findings.Errors()
	warnings := findings.Warnings()
	infos := findings.Infos()

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed"))
	} else {
		summary := []string{}
		if len(errs) > 0 {
			summary = append(summary, color.RedString("%d error(s)", len(errs)))
		}
		if len(warnings) > 0 {
			summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
		}
		fmt.Fprintf(r.out, "Validation failed: %s\n", strings.Join(summary, ", "))
	}

	// Sections below the threshold are counted in the summary but not listed.
	threshold := findings.Threshold()
	if threshold <= SeverityError {
		r.printSection("Errors:", errs, color.FgRed)
	}
	if threshold <= SeverityWarning {
		r.printSection("Warnings:", warnings, color.FgYellow)
	}
	if threshold <= SeverityInfo {
		r.printSection("Repairs:", infos, color.FgCyan)
	}

	return nil
}

func (r *Reporter) printSection(title string, items []Finding, c color.Attribute) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, title)
	for _, f := range items {
		r.printFinding(f, c)
	}
}

func (r *Reporter) printFinding(f Finding, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • message [subject]

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(printer("•"))
	sb.WriteString(" ")
	sb.WriteString(f.Message)

	if subject := f.SubjectDescription(); subject != "" {
		// Truncate long subjects
		if len(subject) > 50 {
			subject = subject[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", subject))
	}

	fmt.Fprintln(r.out, sb.String())
}
