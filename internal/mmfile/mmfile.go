// Package mmfile loads map files into memory, mapping them read-only where
// the platform allows it.
package mmfile

import (
	"fmt"
	"os"
)

// MinMapSize is the smallest file that is memory-mapped. Smaller files are
// read into a heap buffer.
const MinMapSize = 64 << 10

// File is the loaded contents of a map file. Bytes stays valid until Close.
type File struct {
	Path   string
	data   []byte
	mapped bool
	unmap  func([]byte) error
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte { return f.data }

// Mapped reports whether the contents are backed by a memory mapping.
func (f *File) Mapped() bool { return f.mapped }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	if f == nil || f.data == nil {
		return nil
	}
	data := f.data
	f.data = nil
	if !f.mapped || f.unmap == nil {
		return nil
	}
	if err := f.unmap(data); err != nil {
		return fmt.Errorf("mmfile: unmap %s: %w", f.Path, err)
	}
	return nil
}

func readAll(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, data: data}, nil
}
