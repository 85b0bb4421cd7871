/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger is a small logrus-backed facade used by the transport to
// report handshake, backlog and path-selection events without forcing every
// caller to depend on logrus directly.
package logger

import (
	"io"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	loglvl "github.com/nabbar/multipath/logger/level"
)

// Logger is the facade surface used throughout the transport. A nil *Logger
// is valid and discards every call, so collaborators never need to nil-check
// before logging.
type Logger struct {
	log *logrus.Logger
}

// New returns a Logger writing colorized entries to stderr at the given level.
func New(lvl loglvl.Level) *Logger {
	l := logrus.New()
	l.SetOutput(colorable.NewColorableStderr())
	l.SetLevel(lvl.Logrus())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{log: l}
}

// Discard returns a Logger that drops every entry, used as the default when
// no logger is configured.
func Discard() *Logger {
	return &Logger{}
}

// SetOutput redirects the underlying logrus output, e.g. to os.Stdout or a
// test buffer.
func (g *Logger) SetOutput(w io.Writer) {
	if g == nil || g.log == nil {
		return
	}
	g.log.SetOutput(w)
}

func (g *Logger) entry(fields logrus.Fields) *logrus.Entry {
	if fields == nil {
		fields = logrus.Fields{}
	}
	return g.log.WithFields(fields)
}

// Debug logs a diagnostic message with optional structured fields.
func (g *Logger) Debug(message string, fields logrus.Fields) {
	if g == nil || g.log == nil {
		return
	}
	g.entry(fields).Debug(message)
}

// Info logs an informational message with optional structured fields.
func (g *Logger) Info(message string, fields logrus.Fields) {
	if g == nil || g.log == nil {
		return
	}
	g.entry(fields).Info(message)
}

// Warning logs a degraded-but-continuing condition with optional structured fields.
func (g *Logger) Warning(message string, fields logrus.Fields) {
	if g == nil || g.log == nil {
		return
	}
	g.entry(fields).Warn(message)
}

// Error logs a failed operation with optional structured fields.
func (g *Logger) Error(message string, fields logrus.Fields) {
	if g == nil || g.log == nil {
		return
	}
	g.entry(fields).Error(message)
}

var _ io.Writer = (*stdWriter)(nil)

type stdWriter struct {
	g   *Logger
	lvl loglvl.Level
}

func (w *stdWriter) Write(p []byte) (int, error) {
	if w.g == nil {
		return len(p), nil
	}
	switch w.lvl {
	case loglvl.DebugLevel:
		w.g.Debug(string(p), nil)
	case loglvl.WarnLevel:
		w.g.Warning(string(p), nil)
	case loglvl.ErrorLevel, loglvl.FatalLevel, loglvl.PanicLevel:
		w.g.Error(string(p), nil)
	default:
		w.g.Info(string(p), nil)
	}
	return len(p), nil
}

// StdWriter returns an io.Writer that forwards writes to the Logger at the
// given level, mirroring the teacher's log/golog.go interop with the
// standard library's log package.
func (g *Logger) StdWriter(lvl loglvl.Level) io.Writer {
	return &stdWriter{g: g, lvl: lvl}
}
