package event

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source is the interface for readers that yield event identifiers.
type Source interface {
	// Next reads the next identifier.
	// Returns "", nil when there are no more identifiers.
	Next() (string, error)

	// Close closes the source and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

// Reader reads event identifiers from a text file, one per line.
// Blank lines and lines starting with '#' are skipped.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewReader creates a reader for the given file. Supports plain and
// gzipped input; "-" reads from stdin.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFrom(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}

	r := &Reader{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read events file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek events file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	return r, nil
}

// NewReaderFrom creates a reader from an io.Reader (e.g., stdin).
func NewReaderFrom(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// Next returns the next identifier, or "" at end of input.
func (r *Reader) Next() (string, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if len(line) == 0 && err != nil {
			if err == io.EOF {
				return "", nil
			}
			return "", fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
		}
		r.lineNumber++

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			if err == io.EOF {
				return "", nil
			}
			continue
		}
		return line, nil
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// LineNumber returns the current line number.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}
