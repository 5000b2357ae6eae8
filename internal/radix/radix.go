// Package radix converts rendered hexadecimal memory text to binary radix and back.
package radix

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidDigits is returned for tokens that are not valid in the source radix.
var ErrInvalidDigits = errors.New("invalid digits")

// HexToBinary renders every whitespace separated hexadecimal token of the
// text as binary digits, zero padded to 4 digits per hexadecimal digit.
// Line structure and token separators are kept.
func HexToBinary(text string) (string, error) {
	return convert(text, 16, 2, 4)
}

// BinaryToHex is the inverse of HexToBinary. Tokens are zero padded to one
// upper case hexadecimal digit per 4 binary digits.
func BinaryToHex(text string) (string, error) {
	return convert(text, 2, 16, 0)
}

func convert(text string, from, to, digitsPerSourceDigit int) (string, error) {
	if text == "" {
		return "", nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		tokens := strings.Split(line, " ")
		for j, token := range tokens {
			if token == "" {
				continue
			}
			converted, err := convertToken(token, from, to, digitsPerSourceDigit)
			if err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			tokens[j] = converted
		}
		lines[i] = strings.Join(tokens, " ")
	}
	return strings.Join(lines, "\n"), nil
}

func convertToken(token string, from, to, digitsPerSourceDigit int) (string, error) {
	if !validDigits(token, from) {
		return "", fmt.Errorf("%w in token '%s'", ErrInvalidDigits, token)
	}
	value, ok := new(big.Int).SetString(token, from)
	if !ok {
		return "", fmt.Errorf("%w in token '%s'", ErrInvalidDigits, token)
	}

	width := len(token) * digitsPerSourceDigit
	if digitsPerSourceDigit == 0 {
		width = (len(token) + 3) / 4
	}

	digits := strings.ToUpper(value.Text(to))
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return digits, nil
}

func validDigits(token string, base int) bool {
	for _, c := range token {
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case c >= 'a' && c <= 'f':
			digit = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = int(c-'A') + 10
		default:
			return false
		}
		if digit >= base {
			return false
		}
	}
	return true
}
