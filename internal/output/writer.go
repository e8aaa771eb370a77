// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/ltsvgrep/internal/config"
	"github.com/tfctl/ltsvgrep/internal/log"
	"github.com/tfctl/ltsvgrep/internal/ltsv"
)

// Supported values of the --output flag.
const (
	FormatLTSV = "ltsv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted --output values, default first.
var Formats = []string{FormatLTSV, FormatJSON, FormatYAML}

// defaultKeyColor is used for keys when colors.key is not configured.
const defaultKeyColor = "#f6be00"

// RecordWriter emits selected records. Writes are buffered until Flush.
type RecordWriter interface {
	WriteRecord(r ltsv.Record) error
	Flush() error
}

type options struct {
	color bool
}

// Option customizes a RecordWriter.
type Option func(*options)

// WithColor enables colored keys for the ltsv format. It has no effect on the
// other formats.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// NewRecordWriter returns a RecordWriter rendering records to w in format.
// An empty format selects ltsv.
func NewRecordWriter(w io.Writer, format string, opts ...Option) (RecordWriter, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)

	switch format {
	case "", FormatLTSV:
		lw := &ltsvWriter{w: bw}
		if o.color {
			style := lipgloss.NewStyle().Foreground(keyColor())
			lw.keyStyle = &style
		}
		return lw, nil
	case FormatJSON:
		return &jsonWriter{w: bw}, nil
	case FormatYAML:
		return &yamlWriter{w: bw}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: must be one of %v", format, Formats)
	}
}

// keyColor returns the configured key color, falling back to the default.
func keyColor() color.Color {
	if c, err := config.GetString("colors.key"); err == nil && c != "" {
		log.Debugf("key color from config: %s", c)
		return lipgloss.Color(c)
	}
	return lipgloss.Color(defaultKeyColor)
}

// ltsvWriter re-encodes records with the ltsv codec.
type ltsvWriter struct {
	w        *bufio.Writer
	keyStyle *lipgloss.Style
}

func (lw *ltsvWriter) WriteRecord(r ltsv.Record) error {
	if lw.keyStyle == nil {
		_, err := lw.w.WriteString(ltsv.Encode(r))
		return err
	}

	var b bytes.Buffer
	for _, p := range r {
		lw.writeKey(&b, ltsv.Escape(p.Key))
		b.WriteByte('=')
		b.WriteString(ltsv.Escape(p.Value))
		b.WriteByte('\t')
	}
	b.WriteByte('\n')

	_, err := lw.w.Write(b.Bytes())
	return err
}

// writeKey styles the runs of an escaped key between tabs and line feeds.
// Render expands tabs and pads multi-line text, so those bytes are written
// unstyled to keep the output decodable.
func (lw *ltsvWriter) writeKey(b *bytes.Buffer, key string) {
	for {
		i := strings.IndexAny(key, "\t\n")
		if i < 0 {
			break
		}
		if i > 0 {
			b.WriteString(lw.keyStyle.Render(key[:i]))
		}
		b.WriteByte(key[i])
		key = key[i+1:]
	}
	if key != "" {
		b.WriteString(lw.keyStyle.Render(key))
	}
}

func (lw *ltsvWriter) Flush() error {
	return lw.w.Flush()
}

// jsonWriter emits one JSON object per line. Keys keep record order and
// duplicates are written as they appear.
type jsonWriter struct {
	w *bufio.Writer
}

func (jw *jsonWriter) WriteRecord(r ltsv.Record) error {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, p := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return fmt.Errorf("failed to marshal key: %w", err)
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteString("}\n")

	_, err := jw.w.Write(b.Bytes())
	return err
}

func (jw *jsonWriter) Flush() error {
	return jw.w.Flush()
}

// yamlWriter emits one YAML document per record.
type yamlWriter struct {
	w *bufio.Writer
}

func (yw *yamlWriter) WriteRecord(r ltsv.Record) error {
	doc := make(yaml.MapSlice, 0, len(r))
	for _, p := range r {
		doc = append(doc, yaml.MapItem{Key: p.Key, Value: p.Value})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := yw.w.WriteString("---\n"); err != nil {
		return err
	}
	_, err = yw.w.Write(out)
	return err
}

func (yw *yamlWriter) Flush() error {
	return yw.w.Flush()
}
