package validate

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/gedcheck/internal/model"
)

// Severity represents the importance of a finding. Higher values are more
// important, so thresholds compare with >=.
type Severity int

const (
	// SeverityInfo records an advisory note, typically a repair the validator made.
	SeverityInfo Severity = iota
	// SeverityWarning indicates a non-blocking concern.
	SeverityWarning
	// SeverityError indicates a defect the caller should treat as blocking.
	SeverityError
)

// ErrUnknownSeverity is returned when parsing an unrecognized severity name.
var ErrUnknownSeverity = errors.New("unknown severity")

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a name such as "warning" or "ERROR" into a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityInfo, errors.Wrapf(ErrUnknownSeverity, "%q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Finding is a single defect or repair.
type Finding struct {
	// Severity indicates the importance of the finding.
	Severity Severity
	// Message is composed from fixed phrases so callers can match on keywords.
	Message string
	// Subject is the object instance the finding is about, never a copy.
	Subject any
}

// Error implements the error interface.
func (f Finding) Error() string {
	return f.Severity.String() + ": " + f.Message
}

// SubjectDescription returns a short human-readable name for the subject.
func (f Finding) SubjectDescription() string {
	switch s := f.Subject.(type) {
	case nil:
		return ""
	case *model.Gedcom:
		return "document"
	case *model.Header:
		return "header"
	case *model.CharacterSet:
		return "character set"
	case *model.GedcomVersion:
		return "gedcom version"
	case *model.Submitter:
		return "submitter " + s.Xref
	case *model.Trailer:
		return "trailer"
	case *model.StringWithCustomTags:
		return fmt.Sprintf("string %q", s.Value)
	default:
		return fmt.Sprintf("%T", s)
	}
}

// Findings is the ordered collector for one validation run.
type Findings struct {
	items     []Finding
	threshold Severity
}

// NewFindings returns an empty collector whose IsEmpty counts findings of any
// severity.
func NewFindings() *Findings {
	return &Findings{threshold: SeverityInfo}
}

// SetThreshold sets the minimum severity IsEmpty considers.
func (f *Findings) SetThreshold(s Severity) {
	f.threshold = s
}

// Threshold returns the minimum severity IsEmpty considers.
func (f *Findings) Threshold() Severity {
	if f == nil {
		return SeverityInfo
	}
	return f.threshold
}

// Add appends a finding.
func (f *Findings) Add(severity Severity, message string, subject any) {
	f.items = append(f.items, Finding{
		Severity: severity,
		Message:  message,
		Subject:  subject,
	})
}

// AddError appends an error finding.
func (f *Findings) AddError(message string, subject any) {
	f.Add(SeverityError, message, subject)
}

// AddWarning appends a warning finding.
func (f *Findings) AddWarning(message string, subject any) {
	f.Add(SeverityWarning, message, subject)
}

// AddInfo appends an info finding.
func (f *Findings) AddInfo(message string, subject any) {
	f.Add(SeverityInfo, message, subject)
}

// Has reports whether some finding has exactly the given severity and a
// message containing every keyword. Matching is case-sensitive and keywords
// need not be contiguous.
func (f *Findings) Has(severity Severity, keywords ...string) bool {
	if f == nil {
		return false
	}
	for _, item := range f.items {
		if item.Severity != severity {
			continue
		}
		if containsAll(item.Message, keywords) {
			return true
		}
	}
	return false
}

func containsAll(message string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(message, k) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no finding at or above the threshold exists.
func (f *Findings) IsEmpty() bool {
	if f == nil {
		return true
	}
	for _, item := range f.items {
		if item.Severity >= f.threshold {
			return false
		}
	}
	return true
}

// Clear discards all findings. The threshold is kept.
func (f *Findings) Clear() {
	f.items = nil
}

// Len returns the number of findings of any severity.
func (f *Findings) Len() int {
	if f == nil {
		return 0
	}
	return len(f.items)
}

// All returns a copy of the findings in insertion order.
func (f *Findings) All() []Finding {
	if f == nil || len(f.items) == 0 {
		return nil
	}
	out := make([]Finding, len(f.items))
	copy(out, f.items)
	return out
}

// Count returns the number of findings with exactly the given severity.
func (f *Findings) Count(severity Severity) int {
	if f == nil {
		return 0
	}
	n := 0
	for _, item := range f.items {
		if item.Severity == severity {
			n++
		}
	}
	return n
}

// CountAtLeast returns the number of findings with severity s or higher.
func (f *Findings) CountAtLeast(s Severity) int {
	if f == nil {
		return 0
	}
	n := 0
	for _, item := range f.items {
		if item.Severity >= s {
			n++
		}
	}
	return n
}

// HasErrors returns true if any finding has SeverityError.
func (f *Findings) HasErrors() bool {
	return f.Count(SeverityError) > 0
}

// HasWarnings returns true if any finding has SeverityWarning.
func (f *Findings) HasWarnings() bool {
	return f.Count(SeverityWarning) > 0
}

// Errors returns the findings with SeverityError.
func (f *Findings) Errors() []Finding {
	return f.filter(SeverityError)
}

// Warnings returns the findings with SeverityWarning.
func (f *Findings) Warnings() []Finding {
	return f.filter(SeverityWarning)
}

// Infos returns the findings with SeverityInfo.
func (f *Findings) Infos() []Finding {
	return f.filter(SeverityInfo)
}

func (f *Findings) filter(severity Severity) []Finding {
	if f == nil {
		return nil
	}
	var res []Finding
	for _, item := range f.items {
		if item.Severity == severity {
			res = append(res, item)
		}
	}
	return res
}
