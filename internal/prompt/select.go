// Package prompt provides numbered selection prompts for the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for selection.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector asks the user to pick one of several items.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a Selector reading answers from r and writing prompts
// to w.
func NewSelector(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Select prints title and one numbered line per item, then reads a choice.
// An empty answer picks the first item; a single item is returned without
// prompting. EOF yields ErrSelectionCancelled.
func Select[T any](s *Selector, title string, items []T, label func(T) string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrNoChoices
	}
	if len(items) == 1 {
		return items[0], nil
	}

	fmt.Fprintln(s.writer, title)
	for i, item := range items {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, label(item))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return zero, ErrSelectionCancelled
		}
		return zero, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return items[0], nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return zero, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(items) {
		return zero, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(items))
	}
	return items[n-1], nil
}
