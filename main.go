// Package main implements the main entry point for a binary to memory image text converter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/bin2hex/internal/cli"
	"github.com/retroenv/bin2hex/internal/config"
	"github.com/retroenv/bin2hex/internal/detector"
	"github.com/retroenv/bin2hex/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println("bin2hex", fileprocessor.VersionString(version, commit))
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if opts.List {
		if err := cli.PrintFormats(os.Stdout, logger); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	if len(files) == 0 {
		logger.Warn("No files matched the batch pattern", log.String("batch", opts.Batch))
		return
	}

	format := detector.New(logger).Detect(opts)
	var failed bool

	for _, file := range files {
		opts.Input = file
		if len(files) > 1 || opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file, format)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Converting failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
