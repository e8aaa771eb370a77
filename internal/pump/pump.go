// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tfctl/ltsvgrep/internal/filters"
	"github.com/tfctl/ltsvgrep/internal/log"
	"github.com/tfctl/ltsvgrep/internal/ltsv"
	"github.com/tfctl/ltsvgrep/internal/output"
)

// ErrInvalidEncoding is wrapped by StreamReadError when a line is not valid
// UTF-8.
var ErrInvalidEncoding = errors.New("stream did not contain valid UTF-8")

// StreamReadError reports a failure to read the next line. It aborts the run.
type StreamReadError struct {
	// Line is the 1-based number of the line being read.
	Line int
	Err  error
}

func (e *StreamReadError) Error() string {
	return fmt.Sprintf("error reading input at line %d: %v", e.Line, e.Err)
}

func (e *StreamReadError) Unwrap() error {
	return e.Err
}

// StreamWriteError reports a rejected write or flush. It aborts the run.
type StreamWriteError struct {
	// Line is the input line whose record was being written, or the last line
	// read when the final flush failed.
	Line int
	Err  error
}

func (e *StreamWriteError) Error() string {
	return fmt.Sprintf("error writing output for line %d: %v", e.Line, e.Err)
}

func (e *StreamWriteError) Unwrap() error {
	return e.Err
}

// Stats counts what happened during a run.
type Stats struct {
	Lines   int
	Matched int
	Emitted int
	Skipped int
	Bytes   uint64
}

// Pump moves records from an input stream to a RecordWriter, one line at a
// time.
type Pump struct {
	Pattern  filters.Pattern
	Selector filters.Selector
	Decoder  ltsv.Decoder
	Writer   output.RecordWriter
	// LineBuffered flushes the writer after every emitted record.
	LineBuffered bool
}

// Run reads r until end of stream. It returns nil on a clean end of stream,
// a *StreamReadError when r fails and a *StreamWriteError when the writer
// fails. Lines that fail to decode are logged, counted as skipped and
// dropped. Stats are valid on every return path.
func (p *Pump) Run(r io.Reader) (Stats, error) {
	var stats Stats

	br := bufio.NewReader(r)
	for {
		line, ok, err := readLine(br, &stats)
		if err != nil {
			return stats, &StreamReadError{Line: stats.Lines, Err: err}
		}
		if !ok {
			break
		}

		record, err := p.Decoder.Decode(line)
		if err != nil {
			stats.Skipped++
			log.Warnf("skipping line %d: %v", stats.Lines, err)
			continue
		}

		if !p.Pattern.Match(record) {
			continue
		}
		stats.Matched++

		if err := p.emit(p.Selector.Select(record)); err != nil {
			return stats, &StreamWriteError{Line: stats.Lines, Err: err}
		}
		stats.Emitted++
	}

	if err := p.Writer.Flush(); err != nil {
		return stats, &StreamWriteError{Line: stats.Lines, Err: err}
	}

	log.Debugf("end of stream: lines=%d matched=%d skipped=%d", stats.Lines, stats.Matched, stats.Skipped)

	return stats, nil
}

// emit writes one selected record, flushing when line buffered.
func (p *Pump) emit(record ltsv.Record) error {
	if err := p.Writer.WriteRecord(record); err != nil {
		return err
	}
	if p.LineBuffered {
		return p.Writer.Flush()
	}
	return nil
}

// readLine returns the next line without its "\n" or "\r\n" terminator. ok is
// false once the stream is exhausted. A final line without a terminator is
// still returned.
func readLine(br *bufio.Reader, stats *Stats) (line string, ok bool, err error) {
	line, err = br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		stats.Lines++
		return "", false, err
	}
	if line == "" {
		return "", false, nil
	}

	stats.Lines++
	stats.Bytes += uint64(len(line))

	if strings.HasSuffix(line, "\n") {
		line = strings.TrimSuffix(line[:len(line)-1], "\r")
	}

	if !utf8.ValidString(line) {
		return "", false, ErrInvalidEncoding
	}

	log.Tracef("line %d: %q", stats.Lines, line)

	return line, true, nil
}
