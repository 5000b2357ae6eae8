package engine

import (
	"bytes"

	"github.com/retroenv/bin2hex/internal/ecc"
)

// Skip defines an erased memory pattern. Words that consist only of the skip
// value are not augmented, the augmented word is filled with the skip value.
type Skip struct {
	Enabled bool
	Value   byte
}

// Augment returns the word augmented by the encoder. Without an encoder the
// word is returned unchanged. The encoder runs for erased words too, as the
// width of its result is only known afterwards.
func Augment(data []byte, address uint64, encoder *ecc.Encoder, skip Skip) []byte {
	if encoder == nil {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}

	out := encoder.Encode(data, len(data), address)
	if skip.Enabled && erased(data, skip.Value) {
		return bytes.Repeat([]byte{skip.Value}, len(out))
	}
	return out
}

func erased(data []byte, value byte) bool {
	for _, b := range data {
		if b != value {
			return false
		}
	}
	return true
}
