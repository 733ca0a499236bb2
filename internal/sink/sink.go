// Package sink provides the shared, append-only destination for generated
// usernames.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pierrec/lz4/v4"
	"go.uber.org/zap"
)

// ErrClosed is returned by AppendLines after Close.
var ErrClosed = errors.New("sink is closed")

// Sink accepts whole batches of lines. One AppendLines call is never
// interleaved with another.
type Sink interface {
	AppendLines(lines []string) error
	Close() error
}

// WriteError wraps a failed write to the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Options tunes how the output file is written.
type Options struct {
	// Compress wraps the file in an LZ4 frame.
	Compress bool
	Logger   *zap.Logger
}

// FileSink writes lines to a file under a single mutex.
type FileSink struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	file   *os.File
	lz     *lz4.Writer
	w      *bufio.Writer
	closed bool

	lines atomic.Int64
	bytes atomic.Int64
}

// Open creates path, truncating any previous content.
func Open(path string, opts Options) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &FileSink{path: path, file: f, logger: logger}
	var dst io.Writer = f
	if opts.Compress {
		s.lz = lz4.NewWriter(f)
		dst = s.lz
	}
	s.w = bufio.NewWriter(dst)

	logger.Debug("Output opened", zap.String("path", path), zap.Bool("compress", opts.Compress))
	return s, nil
}

// Path returns the output file path.
func (s *FileSink) Path() string { return s.path }

// AppendLines writes every line followed by a newline, then flushes. The lock
// is held for the whole batch.
func (s *FileSink) AppendLines(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	var n int64
	for _, line := range lines {
		written, err := s.w.WriteString(line + "\n")
		n += int64(written)
		if err != nil {
			return &WriteError{Path: s.path, Err: err}
		}
	}
	if err := s.w.Flush(); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if s.lz != nil {
		if err := s.lz.Flush(); err != nil {
			return &WriteError{Path: s.path, Err: err}
		}
	}

	s.lines.Add(int64(len(lines)))
	s.bytes.Add(n)
	return nil
}

// Stats returns the lines and uncompressed bytes written so far.
func (s *FileSink) Stats() (lines, bytes int64) {
	return s.lines.Load(), s.bytes.Load()
}

// Close flushes and closes the file. Calling Close twice is a no-op.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.w.Flush(); err != nil {
		errs = append(errs, err)
	}
	if s.lz != nil {
		if err := s.lz.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	lines, bytes := s.Stats()
	s.logger.Debug("Output closed", zap.String("path", s.path), zap.Int64("lines", lines), zap.Int64("bytes", bytes))
	return nil
}
