package cli

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/retroenv/bin2hex/internal/dialect"
	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-f", "vhex_dw4", "-o", "out.mem", "rom.bin"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "rom.bin", opts.Input)
	assert.Equal(t, "out.mem", opts.Output)
	assert.Equal(t, "vhex_dw4", opts.Format)
	assert.Equal(t, 1, opts.Split)
}

func TestParseArgsConversionOptions(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		provided []options.Option
		check    func(t *testing.T, conv options.Conversion)
	}{
		{
			name: "defaults",
			args: []string{"prog", "rom.bin"},
			check: func(t *testing.T, conv options.Conversion) {
				t.Helper()
				assert.Equal(t, "none", conv.ECC)
				assert.Equal(t, 0xff, conv.PadByte)
				assert.Equal(t, 0, conv.PadCount)
			},
		},
		{
			name:     "hex address",
			args:     []string{"prog", "-a", "0x8000", "rom.bin"},
			provided: []options.Option{options.Address},
			check: func(t *testing.T, conv options.Conversion) {
				t.Helper()
				assert.Equal(t, uint64(0x8000), conv.Address)
			},
		},
		{
			name:     "long names",
			args:     []string{"prog", "-alignment", "16", "-padcount", "2", "-padbyte", "0x00", "rom.bin"},
			provided: []options.Option{options.Alignment, options.PadCount, options.PadByte},
			check: func(t *testing.T, conv options.Conversion) {
				t.Helper()
				assert.Equal(t, 16, conv.Alignment)
				assert.Equal(t, 2, conv.PadCount)
				assert.Equal(t, 0, conv.PadByte)
			},
		},
		{
			name:     "ecc flags",
			args:     []string{"prog", "-e", "hamming", "-ecc-skip-all-ones", "rom.bin"},
			provided: []options.Option{options.ECC, options.ECCSkipAllOnes},
			check: func(t *testing.T, conv options.Conversion) {
				t.Helper()
				assert.Equal(t, "hamming", conv.ECC)
				assert.True(t, conv.ECCSkipAllOnes)
				assert.False(t, conv.ECCSkipAllZeros)
			},
		},
		{
			name:     "swap",
			args:     []string{"prog", "-swap", "rom.bin"},
			provided: []options.Option{options.SwapEndian},
			check: func(t *testing.T, conv options.Conversion) {
				t.Helper()
				assert.True(t, conv.SwapEndian)
			},
		},
	}

	all := []options.Option{
		options.Address, options.Alignment, options.ECC, options.ECCSkipAllOnes,
		options.ECCSkipAllZeros, options.PadCount, options.PadByte, options.SwapEndian,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			assert.NoError(t, err)
			tt.check(t, opts.Conversion)

			for _, option := range all {
				want := false
				for _, provided := range tt.provided {
					if provided == option {
						want = true
					}
				}
				assert.Equal(t, want, opts.IsSet(option), "option %s", option)
			}
		})
	}
}

func TestParseArgsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"prog"}},
		{name: "unknown flag", args: []string{"prog", "-unknown", "rom.bin"}},
		{name: "flag after input", args: []string{"prog", "rom.bin", "-q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.NotNil(t, usageErr.flags)
		})
	}
}

func TestParseArgsInputFlagAndBatch(t *testing.T) {
	opts, err := parseArgs([]string{"prog", "-i", "rom.bin"})
	assert.NoError(t, err)
	assert.Equal(t, "rom.bin", opts.Input)

	opts, err = parseArgs([]string{"prog", "-batch", "*.bin"})
	assert.NoError(t, err)
	assert.Equal(t, "", opts.Input)
	assert.Equal(t, "*.bin", opts.Batch)

	opts, err = parseArgs([]string{"prog", "-list"})
	assert.NoError(t, err)
	assert.True(t, opts.List)
}

func TestNormalizeOptions(t *testing.T) {
	opts := options.New()
	opts.Format = "C_UINT16"
	assert.NoError(t, normalizeOptions(&opts))
	assert.Equal(t, "c_uint16", opts.Format)

	opts.Format = "ihex"
	err := normalizeOptions(&opts)
	assert.True(t, errors.Is(err, dialect.ErrUnsupported))
}

func TestPrintFormats(t *testing.T) {
	var sb strings.Builder
	assert.NoError(t, PrintFormats(&sb, log.NewTestLogger(t)))

	out := sb.String()
	assert.Contains(t, out, "  vhex_addr_dw4:\n")
	assert.Contains(t, out, "      @00000000 03020100 07060504 0B0A0908 0F0E0D0C 13121110 17161514 1B1A1918 1F1E1D1C\n")
	assert.Contains(t, out, "      0x00, 0x01, 0x02")
	assert.Contains(t, out, "      0/00;\n      1/01;\n")
	assert.Contains(t, out, "Alias name of 'vhex_dw1'")
	assert.Contains(t, out, "  hamming-addr\n")
	assert.Contains(t, out, "No option is accepted")
}

func TestParseArgsVersion(t *testing.T) {
	opts, err := parseArgs([]string{"prog", "-version"})
	assert.NoError(t, err)
	assert.True(t, opts.Version)
	assert.Equal(t, "", opts.Input)
}
