// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrogolib/set"
)

// Option is a conversion option that a dialect may accept.
type Option string

// Conversion options, named after their long command line flags.
const (
	Address         Option = "address"
	Alignment       Option = "alignment"
	ECC             Option = "ecc"
	ECCSkipAllOnes  Option = "ecc-skip-all-ones"
	ECCSkipAllZeros Option = "ecc-skip-all-zeros"
	PadCount        Option = "padcount"
	PadByte         Option = "padbyte"
	SwapEndian      Option = "swap"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // raw binary input file
	Output string // text output file, stdout if empty
	Batch  string // glob pattern of input files to convert
}

// Flags contains behavior options.
type Flags struct {
	Format  string // dialect name, detected from the output file name if empty
	Split   int    // number of output files to distribute the lines over
	List    bool   // print the supported dialects and encoders
	Version bool   // print the program version and exit
	Verify  bool   // decode the generated text and compare it with the input
	Debug   bool
	Quiet   bool
}

// Conversion contains the values of the conversion options. Only options that
// are contained in Provided have been set by the user.
type Conversion struct {
	Address         uint64
	Alignment       int
	ECC             string
	ECCSkipAllOnes  bool
	ECCSkipAllZeros bool
	PadCount        int
	PadByte         int
	SwapEndian      bool

	Provided set.Set[Option]
}

// Program options of the converter.
type Program struct {
	Parameters
	Flags
	Conversion
}

// New returns program options with default values.
func New() Program {
	return Program{
		Flags: Flags{
			Split: 1,
		},
		Conversion: NewConversion(),
	}
}

// NewConversion returns conversion options with default values.
func NewConversion() Conversion {
	return Conversion{
		ECC:      "none",
		PadByte:  0xff,
		Provided: set.New[Option](),
	}
}

// IsSet returns whether the option has been provided by the user.
func (c Conversion) IsSet(option Option) bool {
	return c.Provided != nil && c.Provided.Contains(option)
}

// Set stores the option as provided by the user.
func (c *Conversion) Set(option Option) {
	if c.Provided == nil {
		c.Provided = set.New[Option]()
	}
	c.Provided.Add(option)
}
