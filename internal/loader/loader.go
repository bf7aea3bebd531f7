// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8core/internal/chip8"
)

// ErrImageTooLarge is returned for ROM images that do not fit into memory
// at the requested load origin.
var ErrImageTooLarge = errors.New("ROM image too large")

// Loader handles loading ROM images from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM image of the given file. The image has to fit into the
// CHIP-8 memory when placed at the load origin.
func (l *Loader) Load(path string, origin uint16) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file, origin)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a ROM image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader, origin uint16) ([]byte, error) {
	maxSize := int64(chip8.MemorySize) - int64(origin)
	if maxSize <= 0 {
		return nil, fmt.Errorf("load origin $%04X outside of memory", origin)
	}

	// read one byte more than fits to detect oversized images
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM image: %w", err)
	}

	if len(data) == 0 {
		return nil, chip8.ErrEmptyProgram
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes at origin $%04X", ErrImageTooLarge, maxSize, origin)
	}
	return data, nil
}
