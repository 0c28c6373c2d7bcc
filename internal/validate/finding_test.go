package validate

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/gedcheck/internal/model"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverity_Ordering(t *testing.T) {
	if !(SeverityInfo < SeverityWarning && SeverityWarning < SeverityError) {
		t.Errorf("severities must be ordered info < warning < error")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"ERROR", SeverityError, false},
		{"warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{" info ", SeverityInfo, false},
		{"fatal", SeverityInfo, true},
		{"", SeverityInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSeverity) {
					t.Errorf("error = %v, want ErrUnknownSeverity", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(SeverityWarning)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"warning"` {
		t.Errorf("Marshal() = %s, want \"warning\"", data)
	}

	var s Severity
	if err := json.Unmarshal([]byte(`"error"`), &s); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if s != SeverityError {
		t.Errorf("Unmarshal() = %v, want error", s)
	}
}

func TestFindings_Has(t *testing.T) {
	f := NewFindings()
	f.AddError("Header character set name is not defined", nil)
	f.AddInfo("Document trailer was not specified - repaired", nil)

	tests := []struct {
		name     string
		severity Severity
		keywords []string
		want     bool
	}{
		{"single keyword", SeverityError, []string{"character set"}, true},
		{"non contiguous keywords", SeverityError, []string{"character set", "name", "not", "defined"}, true},
		{"keyword order is irrelevant", SeverityError, []string{"defined", "character set"}, true},
		{"one keyword missing", SeverityError, []string{"character set", "supported"}, false},
		{"case sensitive", SeverityError, []string{"Character Set"}, false},
		{"severity must match exactly", SeverityWarning, []string{"character set"}, false},
		{"higher severity does not match lower", SeverityError, []string{"trailer"}, false},
		{"no keywords matches any finding of severity", SeverityInfo, nil, true},
		{"no keywords and no finding of severity", SeverityWarning, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Has(tt.severity, tt.keywords...); got != tt.want {
				t.Errorf("Has(%v, %q) = %v, want %v", tt.severity, tt.keywords, got, tt.want)
			}
		})
	}
}

func TestFindings_IsEmpty(t *testing.T) {
	f := NewFindings()
	if !f.IsEmpty() {
		t.Error("new collector should be empty")
	}

	f.AddInfo("Header copyright data collection was null - repaired", nil)
	if f.IsEmpty() {
		t.Error("default threshold should count info findings")
	}

	f.SetThreshold(SeverityWarning)
	if !f.IsEmpty() {
		t.Error("info finding should be below a warning threshold")
	}

	f.AddWarning("something odd", nil)
	if f.IsEmpty() {
		t.Error("warning finding should meet a warning threshold")
	}
}

func TestFindings_Clear(t *testing.T) {
	f := NewFindings()
	f.SetThreshold(SeverityError)
	f.AddError("first", nil)
	f.AddWarning("second", nil)

	f.Clear()

	if f.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", f.Len())
	}
	if f.Has(SeverityError) {
		t.Error("Has() after Clear should be false")
	}
	if f.Threshold() != SeverityError {
		t.Errorf("Threshold() after Clear = %v, want error", f.Threshold())
	}
}

func TestFindings_OrderAndFilters(t *testing.T) {
	f := NewFindings()
	f.AddError("e1", nil)
	f.AddInfo("i1", nil)
	f.AddWarning("w1", nil)
	f.AddError("e2", nil)

	all := f.All()
	want := []string{"e1", "i1", "w1", "e2"}
	if len(all) != len(want) {
		t.Fatalf("All() len = %d, want %d", len(all), len(want))
	}
	for i, m := range want {
		if all[i].Message != m {
			t.Errorf("All()[%d].Message = %q, want %q", i, all[i].Message, m)
		}
	}

	all[0].Message = "mutated"
	if f.All()[0].Message != "e1" {
		t.Error("All() should return a copy")
	}

	if got := len(f.Errors()); got != 2 {
		t.Errorf("Errors() len = %d, want 2", got)
	}
	if got := len(f.Warnings()); got != 1 {
		t.Errorf("Warnings() len = %d, want 1", got)
	}
	if got := len(f.Infos()); got != 1 {
		t.Errorf("Infos() len = %d, want 1", got)
	}
	if got := f.CountAtLeast(SeverityWarning); got != 3 {
		t.Errorf("CountAtLeast(warning) = %d, want 3", got)
	}
	if !f.HasErrors() || !f.HasWarnings() {
		t.Error("HasErrors() and HasWarnings() should be true")
	}
}

func TestFindings_NilSafe(t *testing.T) {
	var f *Findings
	if f.Has(SeverityError) {
		t.Error("nil Has() should be false")
	}
	if !f.IsEmpty() {
		t.Error("nil IsEmpty() should be true")
	}
	if f.Len() != 0 || f.All() != nil || f.Errors() != nil {
		t.Error("nil reads should be empty")
	}
}

func TestFinding_Error(t *testing.T) {
	f := Finding{Severity: SeverityError, Message: "Document trailer not specified"}
	if got, want := f.Error(), "error: Document trailer not specified"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFinding_SubjectDescription(t *testing.T) {
	tests := []struct {
		name    string
		subject any
		want    string
	}{
		{"nil", nil, ""},
		{"document", model.NewGedcom(), "document"},
		{"header", model.NewHeader(), "header"},
		{"character set", model.NewCharacterSet(), "character set"},
		{"gedcom version", model.NewGedcomVersion(), "gedcom version"},
		{"submitter", model.NewSubmitter("@SUBM0001@", "test"), "submitter @SUBM0001@"},
		{"trailer", model.NewTrailer(), "trailer"},
		{"string", model.NewStringWithCustomTags("FRYINGPAN"), `string "FRYINGPAN"`},
		{"other", 42, "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Finding{Subject: tt.subject}
			if got := f.SubjectDescription(); got != tt.want {
				t.Errorf("SubjectDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
