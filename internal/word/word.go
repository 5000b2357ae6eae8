// Package word renders fixed width byte groups as hexadecimal or binary tokens.
package word

import (
	"encoding/hex"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Hex returns the upper case hexadecimal representation of data.
// If swap is false the bytes are interpreted as a little-endian machine word and
// the last byte is rendered first. If swap is true the buffer order is kept.
func Hex(data []byte, swap bool) string {
	if swap {
		return strings.ToUpper(hex.EncodeToString(data))
	}

	buf := make([]byte, 0, 2*len(data))
	for i := len(data) - 1; i >= 0; i-- {
		b := data[i]
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	return string(buf)
}

// Binary returns the representation of data as 8 binary digits per byte,
// using the same byte order rules as Hex.
func Binary(data []byte, swap bool) string {
	var sb strings.Builder
	sb.Grow(8 * len(data))

	for i := range data {
		b := data[i]
		if !swap {
			b = data[len(data)-1-i]
		}
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<bit) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// Decode parses a token created by Hex back into bytes in buffer order.
func Decode(token string, swap bool) ([]byte, error) {
	data, err := hex.DecodeString(token)
	if err != nil {
		return nil, err //nolint:wrapcheck // caller adds context
	}
	if !swap {
		reverse(data)
	}
	return data, nil
}

func reverse(data []byte) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
