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

package whirlpool

import "errors"

var (
	// ErrMailboxFull is returned by Submit when the chosen worker's mailbox
	// has reached capacity. The caller decides whether to retry or drop the
	// work item; whirlpool never retries or blocks on its behalf.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrNoLiveWorker is returned by Submit when every worker in the pool is
	// observed dead at dispatch time. It is expected to be transient while
	// the supervisor is mid-restart.
	ErrNoLiveWorker = errors.New("no live worker available")

	// ErrInvalidPid is returned when a pid falls outside [0, numWorkers).
	ErrInvalidPid = errors.New("invalid worker pid")

	// ErrNotAlive is returned when an operation targets a worker that is
	// currently down, awaiting the supervisor's next pass.
	ErrNotAlive = errors.New("worker is not alive")

	// ErrInitFailure wraps an allocation or startup failure encountered
	// while constructing the pool or recovering a worker.
	ErrInitFailure = errors.New("pool initialization failed")

	// ErrAlreadyStopped is returned by Recover once the pool has been
	// torn down; there is nothing left to recover into.
	ErrAlreadyStopped = errors.New("pool has been stopped")
)
