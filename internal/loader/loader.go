// Package loader handles program file loading operations.
package loader

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/spf13/afero"
)

// Loader handles loading program files from a filesystem.
type Loader struct {
	fs afero.Fs
}

// New creates a new program loader that reads from the given filesystem.
// A nil filesystem selects the operating system filesystem.
func New(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load reads the raw program image from the given path. Images that do not
// fit into the program space of the machine are rejected.
func (l *Loader) Load(path string) ([]byte, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loading program %s: path is a directory", path)
	}
	if info.Size() > vm.MaxProgramSize {
		return nil, fmt.Errorf("loading program %s: %d bytes exceed the %d byte limit: %w",
			path, info.Size(), vm.MaxProgramSize, vm.ErrProgramTooLarge)
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", path, err)
	}
	return data, nil
}
