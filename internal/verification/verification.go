// Package verification verifies that the generated text decodes back to the input data.
package verification

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/bin2hex/internal/dialect"
	"github.com/retroenv/bin2hex/internal/radix"
	"github.com/retroenv/bin2hex/internal/word"
	"github.com/retroenv/retrogolib/log"
)

var errMalformed = errors.New("malformed output")

// VerifyOutput decodes the generated text and compares the data bytes of every
// word with the input. A short trailing word is expected to be zero padded.
func VerifyOutput(logger *log.Logger, d *dialect.Dialect, text string, input []byte,
	swap bool, startAddress uint64) error {

	decoded, err := Decode(d, text, swap, startAddress)
	if err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}

	expected := input
	if remainder := len(input) % d.Width; remainder != 0 {
		expected = make([]byte, len(input)+d.Width-remainder)
		copy(expected, input)
	}

	return checkBufferEqual(logger, expected, decoded)
}

// Decode parses text generated for the dialect and returns the data bytes of
// all words in buffer order. Augmentation and padding bytes are dropped.
func Decode(d *dialect.Dialect, text string, swap bool, startAddress uint64) ([]byte, error) {
	if text == "" {
		return nil, nil
	}

	switch d.Policy {
	case dialect.Sequence:
		return decodeTokens(strings.Fields(text), d.Width, swap)

	case dialect.SequenceBinary:
		hexText, err := radix.BinaryToHex(text)
		if err != nil {
			return nil, fmt.Errorf("converting from binary radix: %w", err)
		}
		return decodeTokens(strings.Fields(hexText), d.Width, swap)

	case dialect.Addressed:
		return decodeAddressed(text, d.Width, swap, startAddress)

	case dialect.CArray:
		fields := strings.Fields(text)
		tokens := make([]string, 0, len(fields))
		for _, field := range fields {
			field = strings.TrimSuffix(field, ",")
			token, ok := strings.CutPrefix(field, "0x")
			if !ok {
				return nil, fmt.Errorf("%w: value '%s' has no 0x prefix", errMalformed, field)
			}
			tokens = append(tokens, token)
		}
		return decodeTokens(tokens, d.Width, swap)

	case dialect.Denali:
		return decodeDenali(text)

	default:
		return nil, fmt.Errorf("%w: policy %d", dialect.ErrUnsupported, d.Policy)
	}
}

func decodeTokens(tokens []string, width int, swap bool) ([]byte, error) {
	data := make([]byte, 0, len(tokens)*width)
	for _, token := range tokens {
		b, err := word.Decode(token, swap)
		if err != nil {
			return nil, fmt.Errorf("%w: token '%s': %w", errMalformed, token, err)
		}
		if len(b) < width {
			return nil, fmt.Errorf("%w: token '%s' is shorter than %d bytes", errMalformed, token, width)
		}
		data = append(data, b[:width]...)
	}
	return data, nil
}

func decodeAddressed(text string, width int, swap bool, startAddress uint64) ([]byte, error) {
	var data []byte
	address := startAddress

	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "@") {
			return nil, fmt.Errorf("%w: line %d has no address tag", errMalformed, i+1)
		}

		tag, err := strconv.ParseUint(fields[0][1:], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d address tag: %w", errMalformed, i+1, err)
		}
		if tag != address {
			return nil, fmt.Errorf("%w: line %d address 0x%X, expected 0x%X", errMalformed, i+1, tag, address)
		}

		words, err := decodeTokens(fields[1:], width, swap)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		data = append(data, words...)
		address += uint64(len(fields)-1) * uint64(width)
	}
	return data, nil
}

func decodeDenali(text string) ([]byte, error) {
	lines := strings.Split(text, "\n")
	data := make([]byte, 0, len(lines))

	for i, line := range lines {
		entry, ok := strings.CutSuffix(line, ";")
		if !ok {
			return nil, fmt.Errorf("%w: line %d is not terminated", errMalformed, i+1)
		}
		offset, value, ok := strings.Cut(entry, "/")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no separator", errMalformed, i+1)
		}

		o, err := strconv.ParseUint(offset, 16, 64)
		if err != nil || o != uint64(i) {
			return nil, fmt.Errorf("%w: line %d offset '%s'", errMalformed, i+1, offset)
		}
		v, err := strconv.ParseUint(value, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d value '%s'", errMalformed, i+1, value)
		}
		data = append(data, byte(v))
	}
	return data, nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
