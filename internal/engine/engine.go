// Package engine implements the line assembly of memory image text: it walks
// the input in data width strides, augments and pads every word, formats it
// and joins the tokens into lines.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/bin2hex/internal/ecc"
	"github.com/retroenv/bin2hex/internal/word"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrInvalidWidth is returned for data widths other than 1, 2, 4, 8 or 16 bytes.
	ErrInvalidWidth = errors.New("invalid data width")
	// ErrInvalidAlignment is returned for a negative line alignment.
	ErrInvalidAlignment = errors.New("invalid alignment width")
	// ErrInvalidPadCount is returned for a negative number of pad bytes.
	ErrInvalidPadCount = errors.New("invalid pad count")
	// ErrUnalignedAddress is returned when addresses are rendered or encoded and
	// the start address is not a multiple of the data width.
	ErrUnalignedAddress = errors.New("start address is not aligned to the data width")
)

// Params contains the dialect parameters of a single transcoding call.
type Params struct {
	DataWidth    int    // bytes per word: 1, 2, 4, 8 or 16
	AlignWidth   int    // bytes per line, 0 means one word per line
	SwapEndian   bool   // keep buffer order instead of rendering little-endian words
	StartAddress uint64 // address of the first word

	PadCount int  // bytes appended to every word after augmentation
	PadByte  byte // value of the appended bytes

	Encoder *ecc.Encoder // optional augmentation
	Skip    Skip         // erased pattern that bypasses augmentation
}

// Transcoder converts byte buffers to text lines.
type Transcoder struct {
	logger *log.Logger
}

// New returns a new transcoder that reports parameter corrections to the logger.
func New(logger *log.Logger) *Transcoder {
	return &Transcoder{
		logger: logger,
	}
}

type lineStyle struct {
	tokenPrefix string // written before every token
	separator   string // written after every token except the last
	addressTags bool   // write an address tag at the start of every line
}

// Sequence renders the words as hex tokens separated by spaces, wrapping the
// line whenever the alignment width is reached.
func (t *Transcoder) Sequence(data []byte, params Params) (string, error) {
	return t.assemble(data, params, lineStyle{})
}

// Addressed renders the words like Sequence but starts every line with an
// address tag of the first word of the line.
func (t *Transcoder) Addressed(data []byte, params Params) (string, error) {
	return t.assemble(data, params, lineStyle{addressTags: true})
}

// CArray renders the words as 0x prefixed, comma separated C initializer values.
func (t *Transcoder) CArray(data []byte, params Params) (string, error) {
	return t.assemble(data, params, lineStyle{tokenPrefix: "0x", separator: ","})
}

// Denali renders every byte on its own line as offset/value pair.
func (t *Transcoder) Denali(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%X/%02X;", i, b)
	}
	return sb.String()
}

func (t *Transcoder) assemble(data []byte, params Params, style lineStyle) (string, error) {
	align, err := t.validate(params, style)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	width := params.DataWidth
	address := params.StartAddress
	alignCount := 0

	for count := 0; count < len(data); {
		chunk := t.fetch(data, count, width)
		augmented := Augment(chunk, address, params.Encoder, params.Skip)
		if params.PadCount > 0 {
			augmented = append(augmented, bytes.Repeat([]byte{params.PadByte}, params.PadCount)...)
		}

		if style.addressTags && alignCount == 0 {
			fmt.Fprintf(&sb, "@%08X ", address)
		}
		sb.WriteString(style.tokenPrefix)
		sb.WriteString(word.Hex(augmented, params.SwapEndian))

		count += width
		address += uint64(width)
		alignCount += width
		if count >= len(data) {
			break
		}

		sb.WriteString(style.separator)
		if alignCount >= align {
			sb.WriteByte('\n')
			alignCount = 0
		} else {
			sb.WriteByte(' ')
		}
	}

	return sb.String(), nil
}

// validate checks the parameters and returns the effective alignment width.
func (t *Transcoder) validate(params Params, style lineStyle) (int, error) {
	width := params.DataWidth
	switch width {
	case 1, 2, 4, 8, 16:
	default:
		return 0, fmt.Errorf("%w %d", ErrInvalidWidth, width)
	}

	if params.PadCount < 0 {
		return 0, fmt.Errorf("%w %d", ErrInvalidPadCount, params.PadCount)
	}

	usesAddress := style.addressTags || (params.Encoder != nil && params.Encoder.UsesAddress())
	if usesAddress && params.StartAddress%uint64(width) != 0 {
		return 0, fmt.Errorf("%w: address 0x%X, data width %d", ErrUnalignedAddress, params.StartAddress, width)
	}

	align := params.AlignWidth
	if align == 0 {
		align = width
	}
	if align < 0 {
		return 0, fmt.Errorf("%w %d", ErrInvalidAlignment, align)
	}

	if remainder := align % width; remainder != 0 {
		expanded := align + width - remainder
		t.logger.Warn("Alignment width is not aligned to the data width, expanding it",
			log.Int("alignment", align),
			log.Int("data_width", width),
			log.Int("expanded", expanded))
		align = expanded
	}
	return align, nil
}

// fetch returns the word at the given offset, a short trailing chunk is
// padded with zeros up to the data width.
func (t *Transcoder) fetch(data []byte, offset, width int) []byte {
	end := offset + width
	if end <= len(data) {
		return data[offset:end:end]
	}

	t.logger.Warn("Input data is not aligned to the data width, padding zeros",
		log.Int("data_width", width),
		log.Int("missing", end-len(data)))

	chunk := make([]byte, width)
	copy(chunk, data[offset:])
	return chunk
}
