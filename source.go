package jsonkit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source is a pull-based byte source. Next returns the next chunk, or io.EOF
// once the data is exhausted. A returned chunk is only valid until the next
// call.
type Source interface {
	Next() ([]byte, error)
	// Skip discards n bytes. Skipping past the end is not an error.
	Skip(n int) error
	// BytesRead reports the number of bytes handed out or skipped so far.
	BytesRead() int64
}

// DefaultChunkSize is the read size used by reader-backed sources.
const DefaultChunkSize = 32 * 1024

// BytesSource returns a Source over an in-memory buffer. The whole remaining
// buffer is returned by the first call to Next.
func BytesSource(b []byte) Source { return &bytesSource{b: b} }

type bytesSource struct {
	b   []byte
	off int
}

func (s *bytesSource) Next() ([]byte, error) {
	if s.off >= len(s.b) {
		return nil, io.EOF
	}
	chunk := s.b[s.off:]
	s.off = len(s.b)
	return chunk, nil
}

func (s *bytesSource) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("jsonkit: negative skip %d", n)
	}
	s.off = min(s.off+n, len(s.b))
	return nil
}

func (s *bytesSource) BytesRead() int64 { return int64(s.off) }

// ReaderSource returns a Source reading from r in DefaultChunkSize chunks.
func ReaderSource(r io.Reader) Source {
	return &readerSource{r: bufio.NewReaderSize(r, DefaultChunkSize), buf: make([]byte, DefaultChunkSize)}
}

type readerSource struct {
	r   *bufio.Reader
	buf []byte
	n   int64
}

func (s *readerSource) Next() ([]byte, error) {
	for {
		k, err := s.r.Read(s.buf)
		if k > 0 {
			s.n += int64(k)
			return s.buf[:k], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (s *readerSource) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("jsonkit: negative skip %d", n)
	}
	k, err := s.r.Discard(n)
	s.n += int64(k)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *readerSource) BytesRead() int64 { return s.n }

// FileSource is a reader-backed Source over an open file. Close releases the
// file.
type FileSource struct {
	Source
	f *os.File
}

// OpenFileSource opens path for reading.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{Source: ReaderSource(f), f: f}, nil
}

// Name returns the path the source was opened with.
func (s *FileSource) Name() string { return s.f.Name() }

func (s *FileSource) Close() error { return s.f.Close() }

// ReadAll drains src into memory.
func ReadAll(src Source) ([]byte, error) {
	var out []byte
	for {
		chunk, err := src.Next()
		out = append(out, chunk...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// ParseSource reads src to the end and parses the result with Parse.
func ParseSource(src Source) (Value, error) {
	b, err := ReadAll(src)
	if err != nil {
		return Value{}, err
	}
	return ParseBytes(b)
}

// ParseFile is ParseSource over the named file.
func ParseFile(path string) (Value, error) {
	fs, err := OpenFileSource(path)
	if err != nil {
		return Value{}, err
	}
	defer fs.Close()
	return ParseSource(fs)
}
