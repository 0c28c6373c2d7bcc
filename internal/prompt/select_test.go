package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func label(s string) string { return "id " + s }

func TestSelect_EmptyList(t *testing.T) {
	t.Parallel()

	s := NewSelector(strings.NewReader(""), &bytes.Buffer{})
	_, err := Select(s, "Pick:", []string(nil), label)
	if !errors.Is(err, ErrNoChoices) {
		t.Errorf("Select() error = %v, want ErrNoChoices", err)
	}
}

func TestSelect_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelector(strings.NewReader(""), &buf)

	got, err := Select(s, "Pick:", []string{"a"}, label)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if got != "a" {
		t.Errorf("Select() = %q, want a", got)
	}
	if buf.Len() > 0 {
		t.Errorf("expected no prompt for a single item, got %q", buf.String())
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c"}
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"explicit first", "1\n", "a", nil},
		{"last", "3\n", "c", nil},
		{"default", "\n", "a", nil},
		{"whitespace", "  2  \n", "b", nil},
		{"no trailing newline", "2", "b", nil},
		{"zero", "0\n", "", ErrInvalidSelection},
		{"out of range", "4\n", "", ErrInvalidSelection},
		{"not a number", "b\n", "", ErrInvalidSelection},
		{"eof", "", "", ErrSelectionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelector(strings.NewReader(tt.input), &buf)
			got, err := Select(s, "Pick:", items, label)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Select() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
			for _, want := range []string{"Pick:", "[1] id a", "[3] id c", "Select [1]: "} {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("prompt missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
