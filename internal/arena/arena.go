/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
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
 */

// Package arena implements a fixed-size bump allocator: a single backing
// byte region handed out in increasing offsets, reclaimed in bulk by
// resetting the offset rather than freeing individual allocations.
package arena

import (
	"errors"

	"go.uber.org/atomic"
)

// ErrExhausted is returned by Alloc when the requested size would exceed
// the arena's remaining capacity.
var ErrExhausted = errors.New("arena: out of space")

// Arena is a bump allocator over a fixed []byte region. The region is
// allocated once, at construction, and is never grown or re-sliced; Reset
// only rewinds the offset, so the same backing array is reused across a
// worker's entire lifetime, restarts included.
type Arena struct {
	region []byte
	offset atomic.Uint64
}

// New creates an Arena over a freshly allocated region of size bytes.
// Panics if size is not positive, matching the construction-time
// invariant enforced by the owning worker's memPerWorker parameter.
func New(size int) *Arena {
	if size <= 0 {
		panic("arena: size must be greater than zero")
	}
	return &Arena{region: make([]byte, size)}
}

// Alloc carves n bytes off the arena and returns them as a slice into the
// backing region. Returns ErrExhausted if fewer than n bytes remain before
// the next Reset. The returned slice is only valid until the next Reset;
// callers must not retain it across a restart.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	for {
		cur := a.offset.Load()
		next := cur + uint64(n)
		if next > uint64(len(a.region)) {
			return nil, ErrExhausted
		}
		if a.offset.CompareAndSwap(cur, next) {
			return a.region[cur:next:next], nil
		}
	}
}

// Reset rewinds the arena's offset to zero without releasing or
// reallocating the backing region. Every byte becomes available for reuse;
// previously returned slices must no longer be read or written.
func (a *Arena) Reset() {
	a.offset.Store(0)
}

// Cap reports the arena's total capacity in bytes.
func (a *Arena) Cap() int {
	return len(a.region)
}

// Used reports the number of bytes currently allocated since construction
// or the last Reset.
func (a *Arena) Used() int {
	return int(a.offset.Load())
}
