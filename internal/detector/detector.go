// Package detector handles output format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/bin2hex/internal/dialect"
	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles dialect detection from options and output file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect returns the dialect name to use. An explicitly specified format
// always wins, otherwise the format is derived from the output file extension.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Format != "" {
		return strings.ToLower(opts.Format)
	}

	format := d.detectFromFile(opts.Output)
	d.logger.Debug("Auto-detected format",
		log.String("format", format),
		log.String("file", opts.Output))
	return format
}

// detectFromFile determines the dialect based on the file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".h", ".c", ".inc":
		return "c_uint8"
	case ".vb", ".vbin":
		return "vbin_dw1"
	case ".denali", ".dat":
		return "denali"
	default:
		// .mem, .hex, .vh and everything else are $readmemh files
		return dialect.Default
	}
}
