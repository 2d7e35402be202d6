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

// Package strpool implements the process-wide interned string repository: a
// content-addressed pool of byte strings such that, for any two handles h1
// and h2 obtained from the pool, Content(h1) == Content(h2) iff h1 == h2.
// Identifier equality throughout the front end is therefore pointer
// equality on *Handle, never a byte comparison.
package strpool

import (
	"fmt"

	"github.com/trijezdci/m2c/pkg/hashkey"
)

// MaxLength is the size limit on an interned string: it may not exceed 2000
// bytes.
const MaxLength = 2000

// defaultBuckets is used when Pool is constructed with size 0.
const defaultBuckets = 1024

// Status reports the outcome of a pool operation from a closed set.
type Status int

// The closed set of pool statuses.
const (
	StatusOK Status = iota
	StatusInvalidReference
	StatusInvalidIndices
	StatusAllocationFailed
	StatusSizeLimitExceeded
)

// String renders a status for diagnostics and test failures.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidReference:
		return "invalid-reference"
	case StatusInvalidIndices:
		return "invalid-indices"
	case StatusAllocationFailed:
		return "allocation-failed"
	case StatusSizeLimitExceeded:
		return "size-limit-exceeded"
	default:
		return "unknown-status"
	}
}

// Handle is the unique, content-addressed representative of an interned byte
// string.  Two handles returned by the same Pool compare equal (as pointers)
// iff their contents are equal.  A Handle also doubles as the borrowed
// reference held by AST terminal nodes and symbol-table records.
type Handle struct {
	bytes []byte
	hash  uint64
	refs  uint
}

// Bytes returns the underlying byte content (without any NUL terminator).
func (h *Handle) Bytes() []byte {
	return h.bytes
}

// String returns the content as a Go string.
func (h *Handle) String() string {
	return string(h.bytes)
}

// Length returns the stored length, never recomputed from the slice.
func (h *Handle) Length() int {
	return len(h.bytes)
}

// Hash returns the handle's precomputed streaming hash, consulted by
// pkg/symtab when bucketing symbols by identifier.
func (h *Handle) Hash() uint64 {
	return h.hash
}

// Pool is a process-wide (or, per the "single owning arena" design note, a
// per-session) hash table of interned strings keyed by byte content.
type Pool struct {
	buckets [][]*Handle
	count   int
}

// New constructs a string pool with the given number of hash buckets; zero
// selects a sensible default.
func New(size uint) *Pool {
	if size == 0 {
		size = defaultBuckets
	}
	//
	return &Pool{buckets: make([][]*Handle, size)}
}

// Count returns the number of live (distinctly interned) entries.
func (p *Pool) Count() int {
	return p.count
}

// Get returns the unique handle for the given byte content, creating and
// retaining it on first use, or retaining the existing handle on a repeat
// request.
func (p *Pool) Get(data []byte) (*Handle, Status) {
	if len(data) > MaxLength {
		return nil, StatusSizeLimitExceeded
	}
	//
	h := hashkey.Bytes(data)
	bucket := h % uint64(len(p.buckets))
	//
	for _, existing := range p.buckets[bucket] {
		if existing.hash == h && string(existing.bytes) == string(data) {
			existing.refs++
			return existing, StatusOK
		}
	}
	// Miss: create and retain.
	owned := make([]byte, len(data))
	copy(owned, data)
	handle := &Handle{bytes: owned, hash: h, refs: 1}
	p.buckets[bucket] = append(p.buckets[bucket], handle)
	p.count++
	//
	return handle, StatusOK
}

// GetString is a convenience wrapper around Get for Go string literals.
func (p *Pool) GetString(s string) (*Handle, Status) {
	return p.Get([]byte(s))
}

// GetSlice interns a substring data[offset:offset+length], failing if any
// byte in the slice falls outside printable ASCII (32..126 inclusive).
func (p *Pool) GetSlice(data []byte, offset, length int) (*Handle, Status) {
	if offset < 0 || length < 0 || offset+length > len(data) {
		return nil, StatusInvalidIndices
	}
	//
	slice := data[offset : offset+length]
	//
	for _, b := range slice {
		if b < 32 || b > 126 {
			return nil, StatusInvalidIndices
		}
	}
	//
	return p.Get(slice)
}

// GetConcat returns the interned handle for the concatenation of a and b's
// contents.
func (p *Pool) GetConcat(a, b *Handle) (*Handle, Status) {
	if a == nil || b == nil {
		return nil, StatusInvalidReference
	}
	//
	buf := make([]byte, 0, len(a.bytes)+len(b.bytes))
	buf = append(buf, a.bytes...)
	buf = append(buf, b.bytes...)
	//
	return p.Get(buf)
}

// Retain increments the reference count of an existing handle.
func (p *Pool) Retain(h *Handle) Status {
	if h == nil {
		return StatusInvalidReference
	}
	//
	h.refs++
	//
	return StatusOK
}

// Release decrements the reference count of a handle, removing it from the
// table and deallocating it once the count reaches zero.
func (p *Pool) Release(h *Handle) Status {
	if h == nil {
		return StatusInvalidReference
	} else if h.refs == 0 {
		return StatusInvalidReference
	}
	//
	h.refs--
	//
	if h.refs != 0 {
		return StatusOK
	}
	//
	bucket := h.hash % uint64(len(p.buckets))
	chain := p.buckets[bucket]
	//
	for i, existing := range chain {
		if existing == h {
			p.buckets[bucket] = append(chain[:i], chain[i+1:]...)
			p.count--
			//
			return StatusOK
		}
	}
	// Already removed; treat as a bookkeeping error, not fatal.
	return StatusInvalidReference
}

// MustGet is a test/debug convenience which panics on any non-OK status.
func MustGet(p *Pool, s string) *Handle {
	h, status := p.GetString(s)
	if status != StatusOK {
		panic(fmt.Sprintf("strpool: unexpected status %s interning %q", status, s))
	}
	//
	return h
}
