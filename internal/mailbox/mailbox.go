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

// Package mailbox implements the bounded, mutex-guarded, multi-producer
// single-consumer FIFO that backs each worker's inbound queue.
package mailbox

import (
	"errors"
	"sync"
)

// ErrFull is returned by Push when the mailbox has reached capacity.
var ErrFull = errors.New("mailbox is full")

// ErrClosed is returned by Push once the mailbox has been closed.
var ErrClosed = errors.New("mailbox is closed")

// Mailbox is a fixed-capacity ring buffer of T, safe for many concurrent
// Push callers and exactly one Pop caller. Correctness under multiple
// concurrent Pop callers is not guaranteed and is not required by any
// caller in this module.
type Mailbox[T any] struct {
	mu       sync.Mutex
	items    []T
	head     int
	tail     int
	count    int
	capacity int
	closed   bool
}

// New creates a Mailbox able to hold up to capacity items. Panics if
// capacity is not positive, matching the construction-time invariant
// spec'd for the owning worker (a zero-capacity mailbox can never be
// useful and is always a configuration mistake).
func New[T any](capacity int) *Mailbox[T] {
	if capacity <= 0 {
		panic("mailbox: capacity must be greater than zero")
	}
	return &Mailbox[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
}

// Push enqueues item at the tail. Returns ErrFull if the mailbox is at
// capacity, ErrClosed if Close has already been called. Safe to call from
// any number of goroutines concurrently.
func (m *Mailbox[T]) Push(item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.count == m.capacity {
		return ErrFull
	}

	m.items[m.tail] = item
	m.tail = (m.tail + 1) % m.capacity
	m.count++
	return nil
}

// Pop dequeues the item at the head, in the order it was pushed relative to
// every other item pushed by the same producer. Returns false if the
// mailbox is currently empty. Intended for a single consumer goroutine; the
// owning worker is the only caller in this module.
func (m *Mailbox[T]) Pop() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if m.count == 0 {
		return zero, false
	}

	item := m.items[m.head]
	m.items[m.head] = zero // drop the reference promptly
	m.head = (m.head + 1) % m.capacity
	m.count--
	return item, true
}

// Len reports the number of items currently queued.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Cap reports the mailbox's fixed capacity.
func (m *Mailbox[T]) Cap() int {
	return m.capacity
}

// Close marks the mailbox closed. Subsequent Push calls fail with
// ErrClosed; items already queued remain poppable so a worker can drain
// whatever is left before its goroutine exits. The caller must ensure no
// other goroutine is still pushing once Close returns, matching the
// owning worker's single-writer-at-a-time teardown contract.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}
