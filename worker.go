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
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/whirlpool/internal/arena"
	"github.com/tochemey/whirlpool/internal/mailbox"
)

// WorkerState is the Worker's lifecycle state, reported for diagnostics
// only; dispatch and the supervisor decide purely from alive.
type WorkerState int32

const (
	WorkerRunning WorkerState = iota
	WorkerStopping
	WorkerDown
)

func (s WorkerState) String() string {
	switch s {
	case WorkerRunning:
		return "running"
	case WorkerStopping:
		return "stopping"
	case WorkerDown:
		return "down"
	default:
		return "unknown"
	}
}

// Worker is a long-lived goroutine numbered by Pid, with its own memory
// arena and mailbox. It survives crashes: the supervisor rebuilds it in
// place rather than replacing it, so its Pid and arena region never
// change across the WhirlPool's lifetime.
type Worker struct {
	Pid int

	arena   *arena.Arena
	mailbox *mailbox.Mailbox[WorkItem]

	alive       atomic.Bool
	state       atomic.Int32
	idleBackoff time.Duration
	processed   atomic.Uint64

	// recoverMu serializes stop+restart sequences against each other: the
	// supervisor and a caller-initiated Recover can observe the same dead
	// worker on the same tick, and without this both would stop() then
	// restart() it, spawning two serve goroutines and leaking one.
	recoverMu sync.Mutex

	// stopChan is closed by stop to wake serve out of its idle backoff
	// immediately, so teardown latency never depends on idleBackoff.
	// Rebuilt by restart alongside done.
	stopChan chan struct{}
	done     chan struct{}
}

// newWorker allocates memPerWorker bytes for the worker's arena, builds a
// mailbox of the given capacity, and starts the serve loop.
func newWorker(pid, memPerWorker, mailboxCap int, idleBackoff time.Duration) *Worker {
	w := &Worker{
		Pid:         pid,
		arena:       arena.New(memPerWorker),
		mailbox:     mailbox.New[WorkItem](mailboxCap),
		idleBackoff: idleBackoff,
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
	w.alive.Store(true)
	w.state.Store(int32(WorkerRunning))
	go w.serve()
	return w
}

// push enqueues item into the worker's mailbox. Production code reaches
// this only through WhirlPool.Submit; tests in this package also call it
// directly.
func (w *Worker) push(item WorkItem) error {
	if err := w.mailbox.Push(item); err != nil {
		if err == mailbox.ErrClosed {
			return ErrNotAlive
		}
		return ErrMailboxFull
	}
	return nil
}

// serve drains the mailbox until alive is cleared, waiting up to
// idleBackoff whenever it finds the mailbox empty. The wait is cut short by
// stopChan, so stop's teardown latency never depends on idleBackoff, no
// matter how long a caller configures it. A panic inside item.Func
// propagates out of serve and crashes the process: whirlpool does not
// recover from faults in caller-supplied work, by design.
func (w *Worker) serve() {
	defer close(w.done)
	for w.alive.Load() {
		item, ok := w.mailbox.Pop()
		if !ok {
			select {
			case <-time.After(w.idleBackoff):
			case <-w.stopChan:
			}
			continue
		}
		item.Func(item.Input, item.Output)
		w.processed.Inc()
	}
	w.state.Store(int32(WorkerDown))
}

// Crash marks the worker dead without panicking, simulating the
// cooperative-liveness failure the supervisor is built to detect and
// repair. Test-only: production code never calls this directly.
func (w *Worker) Crash() {
	w.alive.Store(false)
}

// isAlive reports the worker's liveness flag.
func (w *Worker) isAlive() bool {
	return w.alive.Load()
}

// State reports the worker's current lifecycle state.
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Processed reports the number of WorkItems this worker has executed to
// completion since it was created. Restart does not reset the count, so it
// also serves as a coarse indicator of how many times a worker has crashed
// and resumed work. Intended for tests and dispatch-fairness diagnostics.
func (w *Worker) Processed() uint64 {
	return w.processed.Load()
}

// stop transitions the worker to Stopping, clears alive, wakes serve out of
// its idle backoff, and waits for serve to exit. The mailbox is left open;
// Pool.Stop closes it separately once every worker has stopped. Called both
// from Pool.Stop (final teardown) and, via recover, by the supervisor
// before spawning a fresh serve goroutine during recovery.
func (w *Worker) stop() {
	w.state.Store(int32(WorkerStopping))
	w.alive.Store(false)
	close(w.stopChan)
	<-w.done
}

// restart resets the worker in place: the arena's backing region and the
// Pid are preserved, only the bump offset and the done channel are reset,
// and a fresh serve goroutine is launched. The mailbox is left untouched
// so any items queued while the worker was down are drained once the new
// goroutine starts.
func (w *Worker) restart() {
	w.arena.Reset()
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.state.Store(int32(WorkerRunning))
	w.alive.Store(true)
	go w.serve()
}

// recover runs stop followed by restart under recoverMu, so two concurrent
// callers (the supervisor and a caller-initiated Pool.Recover) observing
// the same dead worker can't both pass stop() and each spawn their own
// restart() serve goroutine on it. The second caller simply repeats the
// sequence on an already-fresh worker once the first has finished.
func (w *Worker) recover() {
	w.recoverMu.Lock()
	defer w.recoverMu.Unlock()
	w.stop()
	w.restart()
}
