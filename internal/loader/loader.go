// Package loader handles input file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"
)

// Loader handles loading binary input files from disk.
type Loader struct{}

// New creates a new binary loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the whole input file into memory.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads all data of the reader.
// This is useful for testing and programmatic usage where the input is already in memory.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}
