package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{input: "rom.bin", format: "verilog_dw1", want: "rom.mem"},
		{input: "dir/rom.bin", format: "c_uint32", want: "dir/rom.h"},
		{input: "flash", format: "denali", want: "flash.denali"},
		{input: "rom.bin", format: "VBIN_DW4", want: "rom.vb"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateOutputFilename(tt.input, tt.format))
		})
	}
}

func TestSplitFilename(t *testing.T) {
	assert.Equal(t, "out_0.mem", SplitFilename("out.mem", 0))
	assert.Equal(t, "dir/out_3.mem", SplitFilename("dir/out.mem", 3))
	assert.Equal(t, "out_1", SplitFilename("out", 1))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "dev", VersionString("dev", ""))
	assert.Equal(t, "1.2.0 (abcdef1)", VersionString("1.2.0", "abcdef1234567"))
	assert.Equal(t, "1.2.0 (abc)", VersionString("1.2.0", "abc"))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o600))
	}

	opts := options.New()
	opts.Batch = filepath.Join(dir, "*.bin")
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(files))

	opts = options.New()
	opts.Input = "single.bin"
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.bin"}, files)
}

func TestProcessFileSplit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rom.bin")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, 0o600))

	opts := options.New()
	opts.Input = input
	opts.Output = filepath.Join(dir, "rom.mem")
	opts.Format = "vhex_dw2"
	opts.Split = 2
	opts.Quiet = true

	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

	first, err := os.ReadFile(filepath.Join(dir, "rom_0.mem"))
	assert.NoError(t, err)
	assert.Equal(t, "0100\n0504", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "rom_1.mem"))
	assert.NoError(t, err)
	assert.Equal(t, "0302\n0706", string(second))
}

func TestProcessFileSingleOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rom.bin")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0x01}, 0o600))

	opts := options.New()
	opts.Input = input
	opts.Output = filepath.Join(dir, "rom.h")
	opts.Quiet = true

	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

	content, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Equal(t, "0x00, 0x01", string(content))
}

func TestProcessFileInvalidOptionsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rom.bin")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0x01}, 0o600))

	opts := options.New()
	opts.Input = input
	opts.Output = filepath.Join(dir, "rom.mem")
	opts.Format = "vhex_addr_dw2"
	opts.Address = 1
	opts.Set(options.Address)
	opts.Quiet = true

	assert.Error(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))
	_, err := os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
}
