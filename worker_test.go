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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/whirlpool/internal/testkit"
)

func TestWorkerServesPushedItems(t *testing.T) {
	w := newWorker(0, 64, 4, time.Millisecond)
	defer w.stop()

	out := make([]byte, 1)
	done := make(chan struct{})
	fn := func(input, output []byte) {
		output[0] = input[0] + 1
		close(done)
	}

	require.NoError(t, w.push(WorkItem{Func: fn, Input: []byte{41}, Output: out}))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("work item was never executed")
	}
	require.Equal(t, byte(42), out[0])
}

func TestWorkerCrashClearsLiveness(t *testing.T) {
	w := newWorker(0, 64, 4, time.Millisecond)
	require.True(t, w.isAlive())
	require.Equal(t, WorkerRunning, w.State())

	w.Crash()
	require.True(t, testkit.Eventually(func() bool { return !w.isAlive() }, time.Second, time.Millisecond))
	<-w.done
	require.Equal(t, WorkerDown, w.State())
}

func TestWorkerRestartPreservesPidAndArenaIdentity(t *testing.T) {
	w := newWorker(3, 64, 4, time.Millisecond)
	before := w.arena

	w.Crash()
	<-w.done
	w.restart()
	defer w.stop()

	require.Equal(t, 3, w.Pid)
	require.Same(t, before, w.arena)
	require.Equal(t, 0, w.arena.Used())
	require.True(t, w.isAlive())
}

func TestWorkerRestartDrainsItemsQueuedWhileDown(t *testing.T) {
	w := newWorker(0, 64, 4, time.Millisecond)
	w.Crash()
	<-w.done

	out := make([]byte, 1)
	done := make(chan struct{})
	fn := func(input, output []byte) {
		output[0] = 1
		close(done)
	}
	require.NoError(t, w.push(WorkItem{Func: fn, Input: nil, Output: out}))

	w.restart()
	defer w.stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("item queued while down was never drained after restart")
	}
	require.Equal(t, byte(1), out[0])
}

func TestWorkerPushRejectsWhenFull(t *testing.T) {
	w := newWorker(0, 64, 1, time.Millisecond)

	block := make(chan struct{})
	fn := func(input, output []byte) { <-block }

	// First push is picked up by serve almost immediately, leaving the
	// worker stuck executing fn with an empty mailbox behind it.
	require.NoError(t, w.push(WorkItem{Func: fn}))
	require.True(t, testkit.Eventually(func() bool { return w.mailbox.Len() == 0 }, time.Second, time.Millisecond))

	// Second push fills the one-slot mailbox; third must be rejected.
	require.NoError(t, w.push(WorkItem{Func: fn}))
	require.ErrorIs(t, w.push(WorkItem{Func: fn}), ErrMailboxFull)

	close(block)
	w.stop()
}
