// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ltsv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tfctl/ltsvgrep/internal/log"
)

const (
	escape     = '\\'
	separator  = '\t'
	terminator = '\n'
	assign     = '='
)

var (
	// ErrDataAfterTerminator is wrapped by TerminatedError.
	ErrDataAfterTerminator = errors.New("data after line terminator")

	// ErrMalformed is wrapped by MalformedError.
	ErrMalformed = errors.New("malformed field")
)

// Pair is a single key=value field.
type Pair struct {
	Key   string `yaml:"key" json:"Key"`
	Value string `yaml:"value" json:"Value"`
}

// Record is one decoded line. Order is significant and duplicate keys are
// kept as they appear.
type Record []Pair

// TerminatedError reports characters found after an unescaped line feed.
type TerminatedError struct {
	// Offset is the byte offset of the first character past the terminator.
	Offset int
}

func (e *TerminatedError) Error() string {
	return fmt.Sprintf("invalid LTSV at offset %d: %v", e.Offset, ErrDataAfterTerminator)
}

func (e *TerminatedError) Unwrap() error {
	return ErrDataAfterTerminator
}

// MalformedError reports a reserved character in a position where it has no
// meaning. It is only returned by a strict Decoder.
type MalformedError struct {
	Offset int
	Char   rune
	InKey  bool
}

func (e *MalformedError) Error() string {
	half := "value"
	if e.InKey {
		half = "key"
	}
	return fmt.Sprintf("invalid LTSV at offset %d: unescaped %q in %s: %v", e.Offset, e.Char, half, ErrMalformed)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Decoder turns lines into records. The zero value is the lenient decoder.
type Decoder struct {
	// Strict makes misplaced reserved characters an error instead of
	// silently dropping them.
	Strict bool
}

// Decode decodes line with the lenient decoder.
func Decode(line string) (Record, error) {
	return Decoder{}.Decode(line)
}

// Decode scans line once, left to right. The returned record always holds at
// least one pair. A missing line terminator is not an error.
func (d Decoder) Decode(line string) (Record, error) {
	var (
		record    Record
		key       strings.Builder
		value     strings.Builder
		inValue   bool
		escaped   bool
		completed bool
	)

	// active is the half of the current pair being built.
	active := func() *strings.Builder {
		if inValue {
			return &value
		}
		return &key
	}

	// flush finalizes the current pair and resets the builders.
	flush := func() {
		record = append(record, Pair{Key: key.String(), Value: value.String()})
		key.Reset()
		value.Reset()
		inValue = false
	}

	for i, chr := range line {
		if completed {
			return nil, &TerminatedError{Offset: i}
		}

		if escaped {
			active().WriteRune(chr)
			escaped = false
			continue
		}

		switch {
		case chr == escape:
			escaped = true
		case inValue && chr == separator:
			flush()
		case inValue && chr == terminator:
			completed = true
		case !inValue && chr == assign:
			inValue = true
		case isReserved(chr):
			if d.Strict {
				return nil, &MalformedError{Offset: i, Char: chr, InKey: !inValue}
			}
			log.Tracef("dropped reserved character: offset=%d char=%q", i, chr)
		default:
			active().WriteRune(chr)
		}
	}

	flush()

	return record, nil
}

// isReserved reports whether chr has a meaning to the decoder.
func isReserved(chr rune) bool {
	switch chr {
	case assign, terminator, separator, escape:
		return true
	}
	return false
}

// needsEscape reports whether the encoder prefixes chr with a backslash.
func needsEscape(chr rune) bool {
	return chr == separator || chr == terminator || chr == escape
}

// Escape returns s with tab, line feed and backslash escaped. '=' is left
// as is.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\t\n\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	appendEscaped(&b, s)
	return b.String()
}

func appendEscaped(b *strings.Builder, s string) {
	for _, chr := range s {
		if needsEscape(chr) {
			b.WriteRune(escape)
		}
		b.WriteRune(chr)
	}
}

// AppendPair writes the canonical form of p, including its trailing tab, to b.
func AppendPair(b *strings.Builder, p Pair) {
	appendEscaped(b, p.Key)
	b.WriteRune(assign)
	appendEscaped(b, p.Value)
	b.WriteRune(separator)
}

// EncodePair returns the canonical form of p: the escaped key, '=', the
// escaped value and a trailing tab.
func EncodePair(p Pair) string {
	var b strings.Builder
	b.Grow(len(p.Key) + len(p.Value) + 2)
	AppendPair(&b, p)
	return b.String()
}

// Encode returns the encoded pairs of r followed by a single line feed.
func Encode(r Record) string {
	var b strings.Builder
	for _, p := range r {
		AppendPair(&b, p)
	}
	b.WriteRune(terminator)
	return b.String()
}
