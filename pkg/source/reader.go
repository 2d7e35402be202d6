// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package source implements the buffered source reader: a handle that reads
// an entire file into memory on open and thereafter exposes a cursor with
// one- and two-character lookahead, line/column tracking, and marked-lexeme
// extraction into the interned string pool.
//
// Lookahead is implemented as direct indexing into the fully-read, in-memory
// buffer rather than a ring buffer, so the lexer built on top of it can use
// the same direct-indexing style throughout.
package source

import (
	"os"

	"github.com/trijezdci/m2c/pkg/strpool"
)

// Status is the closed set of outcomes for a reader operation.
type Status int

// The closed set of reader statuses.
const (
	StatusOK Status = iota
	StatusInvalidReference
	StatusFileNotFound
	StatusFileAccessDenied
	StatusFileEmpty
	StatusReadPastEOF
	StatusAllocationFailed
	StatusIOError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidReference:
		return "invalid-reference"
	case StatusFileNotFound:
		return "file-not-found"
	case StatusFileAccessDenied:
		return "file-access-denied"
	case StatusFileEmpty:
		return "file-empty"
	case StatusReadPastEOF:
		return "attempt-to-read-past-eof"
	case StatusAllocationFailed:
		return "allocation-failed"
	case StatusIOError:
		return "io-subsystem-error"
	default:
		return "unknown-status"
	}
}

// lf, cr are the only recognized line-terminator bytes; every terminator
// form (LF, CR, CR-LF) is normalized to a single logical LF when reported to
// consumers via NextChar/La2Char.
const (
	lf byte = '\n'
	cr byte = '\r'
)

// Handle owns a fully-read source buffer and a cursor over it.
type Handle struct {
	path    *strpool.Handle
	buf     []byte
	cursor  int
	line    int
	column  int
	markSet bool
	mark    int
	status  Status
}

// OpenFile reads path entirely into memory and returns a ready-to-scan
// Handle whose path is interned in pool.
func OpenFile(pool *strpool.Pool, path string) (*Handle, Status) {
	info, err := os.Stat(path)
	//
	switch {
	case os.IsNotExist(err):
		return nil, StatusFileNotFound
	case os.IsPermission(err):
		return nil, StatusFileAccessDenied
	case err != nil:
		return nil, StatusIOError
	case info.IsDir():
		return nil, StatusFileAccessDenied
	}
	//
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, StatusFileAccessDenied
		}
		//
		return nil, StatusIOError
	}
	//
	if len(data) == 0 {
		return nil, StatusFileEmpty
	}
	//
	pathHandle, pstatus := pool.GetString(path)
	if pstatus != strpool.StatusOK {
		return nil, StatusAllocationFailed
	}
	//
	return &Handle{
		path:   pathHandle,
		buf:    data,
		cursor: 0,
		line:   1,
		column: 1,
		status: StatusOK,
	}, StatusOK
}

// Path returns the interned file path of this source handle.
func (h *Handle) Path() *strpool.Handle {
	return h.path
}

// Status returns the status of the last operation performed on this handle.
func (h *Handle) Status() Status {
	return h.status
}

// Line returns the current line of the lookahead cursor (counting from 1).
func (h *Handle) Line() int {
	return h.line
}

// Column returns the current column of the lookahead cursor (counting from 1).
func (h *Handle) Column() int {
	return h.column
}

// atEOF reports whether the cursor has reached the end of the buffer.
func (h *Handle) atEOF() bool {
	return h.cursor >= len(h.buf)
}

// rawAt normalizes the byte at absolute buffer position i: a CR, or the CR
// of a CR-LF pair, is reported as LF; a lone LF is reported as-is.  Returns
// ok=false at or past the end of the buffer.
func (h *Handle) rawAt(i int) (b byte, width int, ok bool) {
	if i >= len(h.buf) {
		return 0, 0, false
	}
	//
	c := h.buf[i]
	//
	if c == cr {
		if i+1 < len(h.buf) && h.buf[i+1] == lf {
			return lf, 2, true
		}
		//
		return lf, 1, true
	}
	//
	return c, 1, true
}

// NextChar returns the next character without consuming it.
func (h *Handle) NextChar() (byte, bool) {
	b, _, ok := h.rawAt(h.cursor)
	h.status = StatusOK
	//
	return b, ok
}

// La2Char returns the character after the next one, without consuming
// either.
func (h *Handle) La2Char() (byte, bool) {
	_, width, ok := h.rawAt(h.cursor)
	if !ok {
		return 0, false
	}
	//
	b, _, ok := h.rawAt(h.cursor + width)
	h.status = StatusOK
	//
	return b, ok
}

// ReadChar advances the cursor by exactly one logical character.  CR and
// CR-LF each advance past the entire terminator, increment the line
// counter, and reset the column to 1.
func (h *Handle) ReadChar() (byte, Status) {
	b, width, ok := h.rawAt(h.cursor)
	if !ok {
		h.status = StatusReadPastEOF
		return 0, StatusReadPastEOF
	}
	//
	h.cursor += width
	//
	if b == lf {
		h.line++
		h.column = 1
	} else {
		h.column++
	}
	//
	h.status = StatusOK
	//
	return b, StatusOK
}

// ConsumeChar is an alias for ReadChar kept for symmetry with the lexer's
// ReadSym/ConsumeSym naming.
func (h *Handle) ConsumeChar() (byte, Status) {
	return h.ReadChar()
}

// MarkLexeme records the current cursor as the start of a prospective
// lexeme.
func (h *Handle) MarkLexeme() {
	h.mark = h.cursor
	h.markSet = true
	h.status = StatusOK
}

// ReadMarkedLexeme returns an interned string for the marked span (start
// inclusive .. current cursor exclusive), then clears the mark.  Fails if no
// mark is set or the span is empty.
func (h *Handle) ReadMarkedLexeme(pool *strpool.Pool) (*strpool.Handle, Status) {
	if !h.markSet {
		h.status = StatusInvalidReference
		return nil, StatusInvalidReference
	}
	//
	start := h.mark
	h.markSet = false
	//
	if start >= h.cursor {
		h.status = StatusInvalidReference
		return nil, StatusInvalidReference
	}
	//
	handle, pstatus := pool.GetSlice(h.buf, start, h.cursor-start)
	if pstatus != strpool.StatusOK {
		h.status = StatusIOError
		return nil, StatusIOError
	}
	//
	h.status = StatusOK
	//
	return handle, StatusOK
}

// SourceForLine returns the nth (1-indexed) source line, without its
// terminator, for use in diagnostics.
func (h *Handle) SourceForLine(n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	//
	line := 1
	start := 0
	//
	for i := 0; i < len(h.buf); i++ {
		if line == n {
			end := i
			//
			for end < len(h.buf) && h.buf[end] != lf && h.buf[end] != cr {
				end++
			}
			//
			return string(h.buf[start:end]), true
		}
		//
		if h.buf[i] == lf {
			line++
			start = i + 1
		} else if h.buf[i] == cr {
			line++
			//
			if i+1 < len(h.buf) && h.buf[i+1] == lf {
				i++
			}
			//
			start = i + 1
		}
	}
	//
	if line == n {
		return string(h.buf[start:]), true
	}
	//
	return "", false
}
