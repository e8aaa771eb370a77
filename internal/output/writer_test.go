// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/ltsvgrep/internal/ltsv"
)

var errSink = errors.New("sink closed")

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errSink
}

func sampleRecord() ltsv.Record {
	return ltsv.Record{
		{Key: "time", Value: "10"},
		{Key: "status", Value: "200"},
		{Key: "msg", Value: "a\tb"},
	}
}

func TestNewRecordWriterFormats(t *testing.T) {
	for _, format := range append([]string{""}, Formats...) {
		t.Run("format="+format, func(t *testing.T) {
			w, err := NewRecordWriter(&bytes.Buffer{}, format)
			require.NoError(t, err)
			assert.NotNil(t, w)
		})
	}

	_, err := NewRecordWriter(&bytes.Buffer{}, "table")
	assert.Error(t, err)
}

func TestLTSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter(&buf, FormatLTSV)
	require.NoError(t, err)

	require.NoError(t, w.WriteRecord(sampleRecord()))
	require.NoError(t, w.WriteRecord(nil))
	assert.Empty(t, buf.String(), "output is buffered until Flush")

	require.NoError(t, w.Flush())
	assert.Equal(t, "time=10\tstatus=200\tmsg=a\\\tb\t\n\n", buf.String())
}

func TestLTSVWriterColor(t *testing.T) {
	records := []ltsv.Record{
		{{Key: "status", Value: "200"}},
		{{Key: "a\tb", Value: "1"}},
		{{Key: "a\nb", Value: "2"}},
		{{Key: "a\\b", Value: "3"}},
		{{Key: "\t\nx\t", Value: "4"}, {Key: "", Value: "5"}},
		sampleRecord(),
	}

	for _, rec := range records {
		t.Run(ltsv.EncodePair(rec[0]), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewRecordWriter(&buf, FormatLTSV, WithColor(true))
			require.NoError(t, err)

			require.NoError(t, w.WriteRecord(rec))
			require.NoError(t, w.Flush())

			// Colors aside, the line is the plain encoding.
			assert.Equal(t, ltsv.Encode(rec), ansi.Strip(buf.String()))

			got, err := ltsv.Decode(strings.TrimSuffix(ansi.Strip(buf.String()), "\n"))
			require.NoError(t, err)
			assert.Equal(t, rec[0], got[0])
		})
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter(&buf, FormatJSON)
	require.NoError(t, err)

	rec := append(sampleRecord(), ltsv.Pair{Key: "time", Value: "11"}, ltsv.Pair{Key: "html", Value: "<b>&"})
	require.NoError(t, w.WriteRecord(rec))
	require.NoError(t, w.WriteRecord(ltsv.Record{}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	doc := gjson.Parse(lines[0])
	require.True(t, doc.IsObject())
	assert.Equal(t, "200", doc.Get("status").String())
	assert.Equal(t, "a\tb", doc.Get("msg").String())
	assert.Equal(t, "<b>&", doc.Get("html").String())

	// Key order and duplicates survive.
	var keys []string
	doc.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	assert.Equal(t, []string{"time", "status", "msg", "time", "html"}, keys)

	assert.Equal(t, "{}", lines[1])
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter(&buf, FormatYAML)
	require.NoError(t, err)

	require.NoError(t, w.WriteRecord(sampleRecord()))
	require.NoError(t, w.Flush())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "---\n"))

	var doc yaml.MapSlice
	require.NoError(t, yaml.Unmarshal([]byte(strings.TrimPrefix(out, "---\n")), &doc))
	require.Len(t, doc, 3)
	assert.Equal(t, "time", doc[0].Key)
	assert.Equal(t, "10", doc[0].Value, "numeric-looking values stay strings")
	assert.Equal(t, "status", doc[1].Key)
	assert.Equal(t, "a\tb", doc[2].Value)
}

func TestWriterFlushError(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			w, err := NewRecordWriter(failingWriter{}, format)
			require.NoError(t, err)

			require.NoError(t, w.WriteRecord(sampleRecord()))
			assert.ErrorIs(t, w.Flush(), errSink)
		})
	}
}
