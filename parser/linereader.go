package parser

import (
	"bufio"
	"bytes"
	"io"
)

const (
	// initialBufSize is the starting buffer capacity for the line reader.
	initialBufSize = 64 * 1024

	// maxLineSize is the maximum allowed line length. Lines exceeding this
	// are skipped rather than aborting the entire session. 64 MiB
	// accommodates even the largest API responses seen in the wild.
	maxLineSize = 64 * 1024 * 1024
)

// lineReader reads JSONL input line by line with bounded memory. Blank
// lines are skipped; oversized lines are consumed and skipped so the
// stream keeps going. After iteration, call Err() to check for I/O errors
// (not EOF). Line() reports the 1-based number of the line most recently
// returned, for diagnostics.
//
// A final line with no trailing newline is still returned, but Terminated()
// reports false for it and Committed() excludes its bytes, so a caller
// tailing a growing file can leave the fragment for the next read.
type lineReader struct {
	r          *bufio.Reader
	buf        []byte
	err        error
	line       int
	bytesRead  int64
	committed  int64
	terminated bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r:   bufio.NewReaderSize(r, initialBufSize),
		buf: make([]byte, 0, initialBufSize),
	}
}

// next returns the next non-empty line (without trailing newline) and true,
// or ("", false) at EOF or I/O error.
func (lr *lineReader) next() (string, bool) {
	for {
		line, err := lr.readLine()
		if err != nil {
			if err != io.EOF {
				lr.err = err
			}
			return "", false
		}
		if line != "" {
			return line, true
		}
		// Blank or oversized line -- keep scanning.
	}
}

// Err returns the first non-EOF I/O error encountered, or nil.
func (lr *lineReader) Err() error {
	return lr.err
}

// Line returns the 1-based line number of the last line handed out.
func (lr *lineReader) Line() int {
	return lr.line
}

// Terminated reports whether the last returned line ended with a newline.
// False means the line ended at EOF and may still be growing.
func (lr *lineReader) Terminated() bool {
	return lr.terminated
}

// Committed returns the byte offset just past the last newline-terminated
// line consumed, including skipped lines. Resuming a read at this offset
// never lands inside a line.
func (lr *lineReader) Committed() int64 {
	return lr.committed
}

// readLine reads one full line, returning "" for blank or oversized lines
// and a non-nil error only at EOF or read failure. ReadSlice gives exact
// byte accounting and distinguishes a newline-terminated line (err == nil)
// from a fragment cut off at EOF (err == io.EOF with data).
func (lr *lineReader) readLine() (string, error) {
	lr.buf = lr.buf[:0]
	oversized := false
	lr.line++

	for {
		chunk, err := lr.r.ReadSlice('\n')
		lr.bytesRead += int64(len(chunk))

		switch err {
		case nil:
			// Complete line; chunk includes the delimiter.
			lr.terminated = true
			lr.committed = lr.bytesRead
			if oversized {
				return "", nil
			}
			lr.buf = append(lr.buf, chunk[:len(chunk)-1]...)
			return string(bytes.TrimSuffix(lr.buf, []byte("\r"))), nil

		case bufio.ErrBufferFull:
			if oversized {
				continue
			}
			lr.buf = append(lr.buf, chunk...)
			if len(lr.buf) > maxLineSize {
				oversized = true
				lr.buf = lr.buf[:0]
			}

		case io.EOF:
			if len(chunk) == 0 && len(lr.buf) == 0 {
				lr.line--
				return "", io.EOF
			}
			// Final line ended at EOF without a newline: hand it out but
			// leave it uncommitted.
			lr.terminated = false
			if oversized {
				return "", nil
			}
			lr.buf = append(lr.buf, chunk...)
			return string(lr.buf), nil

		default:
			lr.line--
			return "", err
		}
	}
}
