// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

const tracePrefix = "TRACE: "

var letters = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

// traceEnabled gates Tracef. Apex has no trace level, so trace lines are
// debug entries carrying a "TRACE: " prefix that the handler turns into "T".
var traceEnabled bool

// levels maps LTSVGREP_LOG values to apex levels. Unknown values fall back to
// error, which keeps per-line decode warnings quiet unless asked for.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// InitLogger reads LTSVGREP_LOG and installs a CustomHandler on stderr.
// Records own stdout, so nothing is ever logged there. Set LTSVGREP_LOG=warn
// to see skipped lines and info to see the end-of-run summary.
func InitLogger() {
	name := strings.ToLower(os.Getenv("LTSVGREP_LOG"))
	level, ok := levels[name]
	if !ok {
		level = log.ErrorLevel
	}
	traceEnabled = name == "trace"

	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(level)
}

// CustomHandler writes one line per entry: timestamp, a one-letter level,
// the message and any fields as key=value.
type CustomHandler struct {
	// Writer receives the formatted lines. Nil means stderr.
	Writer io.Writer
}

// HandleLog implements log.Handler.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')

	if msg, ok := strings.CutPrefix(e.Message, tracePrefix); ok {
		b.WriteString("T " + msg)
	} else {
		letter, ok := letters[e.Level]
		if !ok {
			letter = "?"
		}
		b.WriteString(letter + " " + e.Message)
	}

	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// Tracef logs below debug. It is a no-op unless LTSVGREP_LOG=trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
