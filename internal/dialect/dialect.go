// Package dialect contains the catalog of supported memory image text formats.
package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/bin2hex/internal/engine"
	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/bin2hex/internal/radix"
	"github.com/retroenv/retrogolib/set"
)

// Default is the dialect used when none is specified or detected.
const Default = "verilog_dw1"

// ErrUnsupported is returned for unknown dialect names.
var ErrUnsupported = errors.New("unsupported format")

// Policy defines how the words of a dialect are composed into lines.
type Policy int

const (
	Sequence       Policy = iota // plain hex words for $readmemh
	SequenceBinary               // plain binary words for $readmemb
	Addressed                    // hex words with @address line tags
	CArray                       // 0x prefixed comma separated values
	Denali                       // offset/value listing, one byte per line
)

// Dialect describes a format: its word width, default alignment, line
// composition policy and the set of options it accepts.
type Dialect struct {
	Name      string
	Width     int
	Alignment int // default bytes per line
	Policy    Policy
	AliasOf   string // canonical name if the dialect is an alias

	Summary string
	options set.Set[options.Option]
}

// Accepts returns whether the dialect supports the option.
func (d *Dialect) Accepts(option options.Option) bool {
	return d.options.Contains(option)
}

// Options returns the accepted options in stable order.
func (d *Dialect) Options() []options.Option {
	var opts []options.Option
	for _, option := range allOptions {
		if d.options.Contains(option) {
			opts = append(opts, option)
		}
	}
	return opts
}

// Convert transcodes the data using the dialect policy.
func (d *Dialect) Convert(tr *engine.Transcoder, data []byte, params engine.Params) (string, error) {
	params.DataWidth = d.Width

	switch d.Policy {
	case Sequence:
		return tr.Sequence(data, params)

	case SequenceBinary:
		text, err := tr.Sequence(data, params)
		if err != nil {
			return "", err
		}
		text, err = radix.HexToBinary(text)
		if err != nil {
			return "", fmt.Errorf("converting to binary radix: %w", err)
		}
		return text, nil

	case Addressed:
		return tr.Addressed(data, params)

	case CArray:
		return tr.CArray(data, params)

	case Denali:
		return tr.Denali(data), nil

	default:
		return "", fmt.Errorf("%w: policy %d", ErrUnsupported, d.Policy)
	}
}

// Lookup returns the dialect for the name, the lookup is case insensitive.
func Lookup(name string) (*Dialect, error) {
	d, ok := catalog[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnsupported, name)
	}
	return d, nil
}

// All returns all dialects in catalog order.
func All() []*Dialect {
	return ordered
}
