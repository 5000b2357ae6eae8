// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/bin2hex/internal/dialect"
	"github.com/retroenv/bin2hex/internal/ecc"
	"github.com/retroenv/bin2hex/internal/engine"
	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// flagOptions maps command line flag names to the conversion option they set.
var flagOptions = map[string]options.Option{
	"a":                  options.Address,
	"address":            options.Address,
	"A":                  options.Alignment,
	"alignment":          options.Alignment,
	"e":                  options.ECC,
	"ecc":                options.ECC,
	"ecc-skip-all-ones":  options.ECCSkipAllOnes,
	"ecc-skip-all-zeros": options.ECCSkipAllZeros,
	"c":                  options.PadCount,
	"padcount":           options.PadCount,
	"b":                  options.PadByte,
	"padbyte":            options.PadByte,
	"swap":               options.SwapEndian,
}

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, error) {
	flags := flag.NewFlagSet(osArgs[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	opts := options.New()
	readOptionFlags(flags, &opts)
	readConversionFlags(flags, &opts.Conversion)

	err := flags.Parse(osArgs[1:])
	args := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.List || opts.Version {
		return opts, nil
	}
	if len(args) == 0 && opts.Input == "" && opts.Batch == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}

	flags.Visit(func(f *flag.Flag) {
		if option, ok := flagOptions[f.Name]; ok {
			opts.Set(option)
		}
	})

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: bin2hex [options] <binary file to convert>\n\n")
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
	fmt.Println("Use -list to show all supported formats and ECC types.")
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg: fmt.Sprintf("Potential argument %s found after file to convert, please pass the file to convert as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format == "" {
		return nil
	}

	if _, err := dialect.Lookup(opts.Format); err != nil {
		return fmt.Errorf("%w. Use -list to show the supported formats", err)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the raw binary input file")
	flags.StringVar(&opts.Output, "o", "", "name of the output text file, printed on console if no name given")
	flags.StringVar(&opts.Format, "f", "", "format to convert to, detected from the output file extension if not given (default \""+dialect.Default+"\")")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.bin")
	flags.IntVar(&opts.Split, "split", 1, "distribute the output lines round-robin over this number of files, has to be a power of two")
	flags.BoolVar(&opts.List, "list", false, "list the supported formats and ECC types")
	flags.BoolVar(&opts.Version, "version", false, "print the program version and exit")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the generated output by decoding it and comparing it with the input")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readConversionFlags(flags *flag.FlagSet, conv *options.Conversion) {
	const (
		addressUsage   = "start address of the image, not all formats support it (default 0x0)"
		alignmentUsage = "byte count per line, the default depends on the format"
		eccUsage       = "ECC type to calculate, not all formats support it (default \"none\")"
		padCountUsage  = "byte count to pad to every word, useful for memories that are wider than the data, such as FLASH with ECC"
		padByteUsage   = "padding byte value (default 0xFF)"
	)

	flags.Uint64Var(&conv.Address, "a", 0, addressUsage)
	flags.Uint64Var(&conv.Address, "address", 0, addressUsage)
	flags.IntVar(&conv.Alignment, "A", 0, alignmentUsage)
	flags.IntVar(&conv.Alignment, "alignment", 0, alignmentUsage)
	flags.StringVar(&conv.ECC, "e", ecc.None, eccUsage)
	flags.StringVar(&conv.ECC, "ecc", ecc.None, eccUsage)
	flags.IntVar(&conv.PadCount, "c", 0, padCountUsage)
	flags.IntVar(&conv.PadCount, "padcount", 0, padCountUsage)
	flags.IntVar(&conv.PadByte, "b", 0xff, padByteUsage)
	flags.IntVar(&conv.PadByte, "padbyte", 0xff, padByteUsage)
	flags.BoolVar(&conv.SwapEndian, "swap", false, "keep the byte order of the input instead of rendering little-endian words")
	flags.BoolVar(&conv.ECCSkipAllOnes, "ecc-skip-all-ones", false, "do not calculate ECC for words that only contain 0xFF bytes")
	flags.BoolVar(&conv.ECCSkipAllZeros, "ecc-skip-all-zeros", false, "do not calculate ECC for words that only contain 0x00 bytes")
}

// exampleData is converted to show an example output for every format.
var exampleData = func() []byte {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}()

const exampleLines = 2

// PrintFormats writes the list of supported formats and ECC types.
func PrintFormats(w io.Writer, logger *log.Logger) error {
	tr := engine.New(logger)

	var sb strings.Builder
	sb.WriteString("Supported formats:\n")
	for _, d := range dialect.All() {
		fmt.Fprintf(&sb, "  %s:\n    %s\n", d.Name, d.Summary)
		if d.AliasOf != "" {
			continue
		}

		if opts := d.Options(); len(opts) > 0 {
			names := make([]string, len(opts))
			for i, option := range opts {
				names[i] = string(option)
			}
			fmt.Fprintf(&sb, "    Options: %s\n", strings.Join(names, ", "))
		} else {
			sb.WriteString("    No option is accepted\n")
		}

		text, err := d.Convert(tr, exampleData, engine.Params{AlignWidth: d.Alignment})
		if err != nil {
			return fmt.Errorf("converting example for format '%s': %w", d.Name, err)
		}
		sb.WriteString("    The format will be:\n")
		lines := strings.SplitN(text, "\n", exampleLines+1)
		for _, line := range lines[:min(len(lines), exampleLines)] {
			fmt.Fprintf(&sb, "      %s\n", line)
		}
		sb.WriteString("      ......\n")
	}

	sb.WriteString("\nSupported ECC types:\n")
	for _, name := range ecc.Names() {
		fmt.Fprintf(&sb, "  %s\n", name)
		encoder, err := ecc.Lookup(name)
		if err != nil {
			return fmt.Errorf("looking up ecc type: %w", err)
		}
		if encoder == nil {
			sb.WriteString("    No ECC is calculated\n")
			continue
		}
		for _, line := range encoder.Description() {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing format list: %w", err)
	}
	return nil
}
