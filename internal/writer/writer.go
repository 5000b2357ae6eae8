// Package writer distributes generated memory image lines over output writers.
package writer

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strings"
)

var errNoWriters = errors.New("no output writers")

// ValidSplit returns whether the split count is 1 or a power of two.
func ValidSplit(count int) bool {
	return count > 0 && bits.OnesCount(uint(count)) == 1
}

// SplitLines splits the text into lines without line terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Distribute writes line i of the text to writer i mod len(writers). Every
// writer receives its lines in original order, separated by a line break and
// without a trailing line break. A single writer receives the text unchanged.
func Distribute(text string, writers []io.Writer) error {
	switch len(writers) {
	case 0:
		return errNoWriters
	case 1:
		if _, err := io.WriteString(writers[0], text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	lines := SplitLines(text)
	for i, line := range lines {
		index := i % len(writers)
		if i >= len(writers) {
			line = "\n" + line
		}
		if _, err := io.WriteString(writers[index], line); err != nil {
			return fmt.Errorf("writing line %d to output %d: %w", i+1, index, err)
		}
	}
	return nil
}
