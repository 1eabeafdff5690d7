// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package emit renders analysis results as an assembly listing or as a C
// translation unit with a matching header. All emitters write lines into
// a Sink, which keeps them deterministic and testable without file I/O.
package emit

import (
	"io"
	"strings"
)

// Sink accepts output one line at a time, without the trailing newline.
type Sink interface {
	Line(s string)
}

// Buffer is a Sink collecting lines in memory.
type Buffer struct {
	lines []string
}

// Line appends one line.
func (b *Buffer) Line(s string) {
	b.lines = append(b.lines, s)
}

// Lines returns the collected lines.
func (b *Buffer) Lines() []string {
	return b.lines
}

// String joins the collected lines into one newline terminated text.
func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// Writer is a Sink forwarding lines to an io.Writer. The first write
// error sticks and mutes all further output.
type Writer struct {
	W   io.Writer
	err error
}

// Line writes one newline terminated line.
func (w *Writer) Line(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.W, s+"\n")
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}
