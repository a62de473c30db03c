// Package fileprocessor handles the disassembler file processing workflow.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

// ProcessFile loads the input program, disassembles it and writes the listing
// to the output file or to stdout if no output file is set.
func ProcessFile(ctx context.Context, logger *log.Logger, fs afero.Fs,
	opts options.DisasmProgram, disasmOptions options.Disassembler) error {

	data, err := loader.New(fs).Load(opts.Input)
	if err != nil {
		return err
	}

	dis, err := disasm.New(logger, data, disasmOptions)
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	writer, err := createWriter(fs, opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := dis.Process(ctx, writer); err != nil {
		closeWriter(writer)
		return fmt.Errorf("disassembling: %w", err)
	}

	if closer, ok := writer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing output file %s: %w", opts.Output, err)
		}
	}

	if !opts.Quiet && opts.Output != "" {
		logger.Info("Listing written",
			log.String("file", opts.Output),
			log.Int("bytes", len(data)))
	}
	return nil
}

func createWriter(fs afero.Fs, opts options.DisasmProgram) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	file, err := fs.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

func closeWriter(writer io.Writer) {
	if closer, ok := writer.(io.Closer); ok {
		_ = closer.Close()
	}
}
