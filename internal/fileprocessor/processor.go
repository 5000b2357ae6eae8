// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/bin2hex/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	pipe := pipeline.New(logger)

	result, err := pipe.Execute(ctx, opts, func(count int) ([]io.WriteCloser, error) {
		return createWriters(opts.Output, count)
	})
	if err != nil {
		return err //nolint:wrapcheck // pipeline errors contain the failing stage
	}

	if !opts.Quiet && result.Split > 1 {
		logger.Info("Distributed output lines",
			log.String("output", opts.Output),
			log.Int("files", result.Split))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file and format.
func GenerateOutputFilename(inputFile, format string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + outputExtension(format)
}

// SplitFilename returns the name of the output file with the given index
// when the output is distributed over multiple files.
func SplitFilename(output string, index int) string {
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s_%d%s", output[:len(output)-len(ext)], index, ext)
}

func outputExtension(format string) string {
	format = strings.ToLower(format)
	switch {
	case strings.HasPrefix(format, "c_"):
		return ".h"
	case format == "denali":
		return ".denali"
	case strings.HasPrefix(format, "vbin"):
		return ".vb"
	default:
		return ".mem"
	}
}

func createWriters(output string, count int) ([]io.WriteCloser, error) {
	if output == "" {
		return []io.WriteCloser{&nopCloser{os.Stdout}}, nil
	}

	if count == 1 {
		file, err := os.Create(output)
		if err != nil {
			return nil, fmt.Errorf("creating output file %s: %w", output, err)
		}
		return []io.WriteCloser{file}, nil
	}

	writers := make([]io.WriteCloser, 0, count)
	for i := range count {
		name := SplitFilename(output, i)
		file, err := os.Create(name)
		if err != nil {
			for _, w := range writers {
				_ = w.Close()
			}
			return nil, fmt.Errorf("creating output file %s: %w", name, err)
		}
		writers = append(writers, file)
	}
	return writers, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("bin2hex", log.String("version", VersionString(version, commit)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// VersionString returns the version followed by the short commit hash if known.
func VersionString(version, commit string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
