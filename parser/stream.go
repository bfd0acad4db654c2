package parser

import (
	"io"
	"os"
)

// WarnFunc receives a recoverable per-line decode failure: the 1-based line
// number and the error (wrapping ErrMalformedRecord). The stream continues
// after every warning.
type WarnFunc func(line int, err error)

// Decoder streams Records out of a JSONL session, one line at a time, with
// bounded memory. Malformed lines are reported through the warn callback
// and skipped; only I/O failures surface through Err.
type Decoder struct {
	lr      *lineReader
	warn    WarnFunc
	queue   []Record
	tail    bool
	skipped int
}

// NewDecoder wraps r. warn may be nil to drop malformed-line diagnostics.
// A final line with no trailing newline is decoded like any other: a
// one-shot read treats it as complete.
func NewDecoder(r io.Reader, warn WarnFunc) *Decoder {
	return &Decoder{lr: newLineReader(r), warn: warn}
}

// NewTailDecoder is NewDecoder for a file that may still be growing: a
// final line with no trailing newline is assumed torn mid-append, so it is
// neither decoded nor warned about, and BytesRead stops before it. Reading
// again from that offset once the writer finishes the line picks it up
// whole.
func NewTailDecoder(r io.Reader, warn WarnFunc) *Decoder {
	return &Decoder{lr: newLineReader(r), warn: warn, tail: true}
}

// Next returns the next Record in input order, or (Record{}, false) when the
// stream is exhausted. A single line can classify into several records (an
// assistant turn with tool calls); they are handed out one by one.
func (d *Decoder) Next() (Record, bool) {
	for len(d.queue) == 0 {
		line, ok := d.lr.next()
		if !ok {
			return Record{}, false
		}
		if d.tail && !d.lr.Terminated() {
			return Record{}, false
		}
		entry, err := ParseEntry([]byte(line))
		if err != nil {
			d.skipped++
			if d.warn != nil {
				d.warn(d.lr.Line(), err)
			}
			continue
		}
		d.queue = Classify(entry)
	}
	rec := d.queue[0]
	d.queue = d.queue[1:]
	return rec, true
}

// Err returns the first I/O error encountered, or nil.
func (d *Decoder) Err() error {
	return d.lr.Err()
}

// Skipped returns the number of malformed lines dropped so far.
func (d *Decoder) Skipped() int {
	return d.skipped
}

// BytesRead returns the byte offset just past the last newline-terminated
// line consumed. Resuming from this offset re-reads nothing and skips
// nothing, which is what tailing a growing file needs.
func (d *Decoder) BytesRead() int64 {
	return d.lr.Committed()
}

// ReadSession decodes an entire session file into memory. Convenience for
// callers that do not need streaming, such as the session picker preview.
func ReadSession(path string, warn WarnFunc) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := NewDecoder(f, warn)
	var recs []Record
	for {
		rec, ok := d.Next()
		if !ok {
			break
		}
		recs = append(recs, rec)
	}
	return recs, d.Err()
}
