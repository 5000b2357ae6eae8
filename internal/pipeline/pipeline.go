// Package pipeline orchestrates the conversion workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/retroenv/bin2hex/internal/detector"
	"github.com/retroenv/bin2hex/internal/dialect"
	"github.com/retroenv/bin2hex/internal/ecc"
	"github.com/retroenv/bin2hex/internal/engine"
	"github.com/retroenv/bin2hex/internal/loader"
	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/bin2hex/internal/verification"
	"github.com/retroenv/bin2hex/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrConflictingSkip is returned when both erased word patterns are selected.
	ErrConflictingSkip = errors.New("options ecc-skip-all-ones and ecc-skip-all-zeros are mutually exclusive")
	// ErrInvalidAlignment is returned for an alignment option that is not positive.
	ErrInvalidAlignment = errors.New("alignment has to be positive")
	// ErrInvalidPadCount is returned for a negative pad count option.
	ErrInvalidPadCount = errors.New("pad count can not be negative")
)

// conversionOptions lists the options in the order they are validated.
var conversionOptions = []options.Option{
	options.Address,
	options.Alignment,
	options.ECC,
	options.ECCSkipAllOnes,
	options.ECCSkipAllZeros,
	options.PadCount,
	options.PadByte,
	options.SwapEndian,
}

// NewWriters is a callback that creates the given number of output writers.
type NewWriters func(count int) ([]io.WriteCloser, error)

// Result of a conversion.
type Result struct {
	Dialect *dialect.Dialect
	Params  engine.Params
	Text    string
	Split   int // number of output writers the lines are distributed over
}

// Pipeline orchestrates the complete conversion workflow.
type Pipeline struct {
	logger     *log.Logger
	detector   *detector.Detector
	loader     *loader.Loader
	transcoder *engine.Transcoder
}

// New creates a new conversion pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:     logger,
		detector:   detector.New(logger),
		loader:     loader.New(),
		transcoder: engine.New(logger),
	}
}

// Execute runs the complete conversion pipeline: it loads the input file,
// converts it and distributes the text over the created output writers.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, newWriters NewWriters) (*Result, error) {
	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	return p.ExecuteWithData(ctx, data, opts, newWriters)
}

// ExecuteWithData runs the conversion pipeline with already loaded input data.
// Nothing is written if the configuration is invalid or the verification fails.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Program,
	newWriters NewWriters) (*Result, error) {

	result, err := p.Convert(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	writers, err := newWriters(result.Split)
	if err != nil {
		return nil, fmt.Errorf("creating output writers: %w", err)
	}

	sinks := make([]io.Writer, len(writers))
	for i, w := range writers {
		sinks[i] = w
	}
	err = writer.Distribute(result.Text, sinks)

	for _, w := range writers {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", closeErr)
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Convert validates the options against the selected dialect and converts the data.
func (p *Pipeline) Convert(ctx context.Context, data []byte, opts options.Program) (*Result, error) {
	d, err := dialect.Lookup(p.detector.Detect(opts))
	if err != nil {
		return nil, err //nolint:wrapcheck // error contains the format name
	}

	params, err := p.createParams(d, opts.Conversion)
	if err != nil {
		return nil, fmt.Errorf("invalid options for format '%s': %w", d.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("converting: %w", err)
	}

	p.checkAddressRange(d, params, len(data))
	p.printInfo(opts, d, params, len(data))

	text, err := d.Convert(p.transcoder, data, params)
	if err != nil {
		return nil, fmt.Errorf("converting to format '%s': %w", d.Name, err)
	}

	if opts.Verify {
		err := verification.VerifyOutput(p.logger, d, text, data, params.SwapEndian, params.StartAddress)
		if err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return &Result{
		Dialect: d,
		Params:  params,
		Text:    text,
		Split:   p.splitCount(opts),
	}, nil
}

// createParams maps the user provided options to engine parameters. Options
// that the dialect does not accept are ignored with a warning.
func (p *Pipeline) createParams(d *dialect.Dialect, conv options.Conversion) (engine.Params, error) {
	if conv.IsSet(options.ECCSkipAllOnes) && conv.ECCSkipAllOnes &&
		conv.IsSet(options.ECCSkipAllZeros) && conv.ECCSkipAllZeros {
		return engine.Params{}, ErrConflictingSkip
	}

	params := engine.Params{
		AlignWidth: d.Alignment,
		PadByte:    0xff,
	}

	for _, option := range conversionOptions {
		if !conv.IsSet(option) {
			continue
		}
		if !d.Accepts(option) {
			p.logger.Warn("Format does not support option, it will be ignored",
				log.String("format", d.Name),
				log.String("option", string(option)))
			continue
		}
		if err := p.applyOption(&params, option, conv); err != nil {
			return engine.Params{}, err
		}
	}

	if params.Skip.Enabled && params.Encoder == nil {
		p.logger.Warn("ECC skip option has no effect without an ECC encoder")
	}
	return params, nil
}

func (p *Pipeline) applyOption(params *engine.Params, option options.Option, conv options.Conversion) error {
	switch option {
	case options.Address:
		params.StartAddress = conv.Address

	case options.Alignment:
		if conv.Alignment <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAlignment, conv.Alignment)
		}
		params.AlignWidth = conv.Alignment

	case options.ECC:
		encoder, err := ecc.Lookup(conv.ECC)
		if err != nil {
			p.logger.Warn("ECC type is not supported, using 'none'",
				log.String("ecc", conv.ECC))
			return nil
		}
		params.Encoder = encoder

	case options.ECCSkipAllOnes:
		if conv.ECCSkipAllOnes {
			params.Skip = engine.Skip{Enabled: true, Value: 0xff}
		}

	case options.ECCSkipAllZeros:
		if conv.ECCSkipAllZeros {
			params.Skip = engine.Skip{Enabled: true, Value: 0x00}
		}

	case options.PadCount:
		if conv.PadCount < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidPadCount, conv.PadCount)
		}
		params.PadCount = conv.PadCount

	case options.PadByte:
		if conv.PadByte < 0 || conv.PadByte > 0xff {
			p.logger.Warn("Pad byte is out of range (0-255), it will be masked to 0-255",
				log.Int("pad_byte", conv.PadByte),
				log.Hex("masked", byte(conv.PadByte&0xff)))
		}
		params.PadByte = byte(conv.PadByte & 0xff)

	case options.SwapEndian:
		params.SwapEndian = conv.SwapEndian
	}
	return nil
}

// checkAddressRange warns when an address-aware encoder covers word addresses
// that do not fit into the 32 bits it encodes.
func (p *Pipeline) checkAddressRange(d *dialect.Dialect, params engine.Params, size int) {
	if params.Encoder == nil || !params.Encoder.UsesAddress() || size == 0 {
		return
	}

	words := uint64((size + d.Width - 1) / d.Width)
	last := params.StartAddress + (words-1)*uint64(d.Width)
	if params.StartAddress <= math.MaxUint32 && last <= math.MaxUint32 && last >= params.StartAddress {
		return
	}
	p.logger.Warn("Word addresses exceed 32 bits, the ECC only covers the low 32 bits of the address",
		log.String("ecc", params.Encoder.Name()),
		log.Hex("start_address", params.StartAddress),
		log.Hex("last_address", last))
}

// splitCount returns the effective number of output writers.
func (p *Pipeline) splitCount(opts options.Program) int {
	split := opts.Split
	if split == 1 {
		return 1
	}

	if !writer.ValidSplit(split) {
		p.logger.Warn("Split count has to be 1 or a power of two, using 1",
			log.Int("split", split))
		return 1
	}
	if opts.Output == "" {
		p.logger.Warn("Splitting is not supported for console output, using 1",
			log.Int("split", split))
		return 1
	}
	return split
}

// printInfo prints information about the conversion being processed.
func (p *Pipeline) printInfo(opts options.Program, d *dialect.Dialect, params engine.Params, size int) {
	if opts.Quiet {
		return
	}

	encoder := ecc.None
	if params.Encoder != nil {
		encoder = params.Encoder.Name()
	}

	p.logger.Info("Converting binary file",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("format", d.Name),
		log.Int("alignment", params.AlignWidth),
		log.String("ecc", encoder),
	)
}
