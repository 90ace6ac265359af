package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Medium is a byte addressable region the store lives on
type Medium interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

var errOutOfMedium = errors.New("access beyond medium size")

func checkRange(off int64, n, size int) error {
	if off < 0 || off+int64(n) > int64(size) {
		return fmt.Errorf("%w: offset %d, length %d, size %d", errOutOfMedium, off, n, size)
	}
	return nil
}

// Memory emulates the medium in RAM, content does not survive the process
type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory(size int) *Memory {
	return &Memory{data: make([]byte, size)}
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkRange(off, len(p), len(m.data)); err != nil {
		return 0, err
	}
	return copy(p, m.data[off:]), nil
}

func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkRange(off, len(p), len(m.data)); err != nil {
		return 0, err
	}
	return copy(m.data[off:], p), nil
}

func (m *Memory) Close() error {
	return nil
}

// Bytes returns a copy of the emulated region
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b = make([]byte, len(m.data))
	copy(b, m.data)
	return b
}

// File keeps the region in a regular file (an image of the eeprom), it is grown to the required size on open
type File struct {
	fd   *os.File
	size int
}

func OpenFile(path string, size int) (*File, error) {
	fd, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_SYNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open \"%s\" image: %w", path, err)
	}

	info, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("cannot stat \"%s\" image: %w", path, err)
	}

	if info.Size() < int64(size) {
		err = fd.Truncate(int64(size))
		if err != nil {
			fd.Close()
			return nil, fmt.Errorf("cannot resize \"%s\" image: %w", path, err)
		}
	}

	return &File{fd: fd, size: size}, nil
}

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if err := checkRange(off, len(p), f.size); err != nil {
		return 0, err
	}
	return f.fd.ReadAt(p, off)
}

func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if err := checkRange(off, len(p), f.size); err != nil {
		return 0, err
	}
	return f.fd.WriteAt(p, off)
}

func (f *File) Close() error {
	return f.fd.Close()
}
