package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load binary file", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "input.bin")
		assert.NoError(t, os.WriteFile(fileName, []byte{0x01, 0x02, 0x03, 0x04}, 0o600))

		data, err := New().Load(fileName)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data)
	})

	t.Run("load empty file", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "empty.bin")
		assert.NoError(t, os.WriteFile(fileName, nil, 0o600))

		data, err := New().Load(fileName)
		assert.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing.bin"))
		assert.ErrorContains(t, err, "opening file")
	})
}

func TestLoadFromReader(t *testing.T) {
	data, err := New().LoadFromReader(strings.NewReader("AB"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("AB"), data)
}
