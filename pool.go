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

// Package whirlpool implements a lightweight, in-process worker pool: a
// fixed set of long-lived workers, each with its own memory arena and
// bounded mailbox, dispatched to round-robin and kept alive by a
// supervisor goroutine that rebuilds dead workers in place.
package whirlpool

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/whirlpool/internal/ticker"
	"github.com/tochemey/whirlpool/log"
)

const (
	defaultIdleBackoff       = time.Millisecond
	defaultSuperviseInterval = 10 * time.Millisecond
)

// WhirlPool owns a fixed slice of workers, dispatches WorkItems to them
// round-robin, and runs a supervisor goroutine that restarts any worker
// it observes dead.
type WhirlPool struct {
	workers []*Worker
	cursor  atomic.Uint64
	running atomic.Bool

	idleBackoff       time.Duration
	superviseInterval time.Duration
	logger            log.Logger

	supervisor  *ticker.Ticker
	superDone   chan struct{}
	superExited chan struct{}
	stopOnce    sync.Once
}

// New builds and starts a WhirlPool of n workers, each with memPerWorker
// bytes of arena and a mailbox of capacity mailboxCap. n, memPerWorker,
// and mailboxCap are validated before any worker or goroutine is
// created, so a failed New never leaks a partially built pool.
func New(n, memPerWorker, mailboxCap int, opts ...Option) (*WhirlPool, error) {
	switch {
	case n <= 0:
		return nil, fmt.Errorf("%w: number of workers must be greater than zero", ErrInitFailure)
	case memPerWorker <= 0:
		return nil, fmt.Errorf("%w: memory per worker must be greater than zero", ErrInitFailure)
	case mailboxCap <= 0:
		return nil, fmt.Errorf("%w: mailbox capacity must be greater than zero", ErrInitFailure)
	}

	pool := &WhirlPool{
		idleBackoff:       defaultIdleBackoff,
		superviseInterval: defaultSuperviseInterval,
		logger:            log.DiscardLogger,
	}
	for _, opt := range opts {
		opt.Apply(pool)
	}

	pool.workers = make([]*Worker, 0, n)
	for pid := 0; pid < n; pid++ {
		w := newWorker(pid, memPerWorker, mailboxCap, pool.idleBackoff)
		pool.workers = append(pool.workers, w)
	}

	pool.running.Store(true)
	pool.superDone = make(chan struct{})
	pool.superExited = make(chan struct{})
	pool.supervisor = ticker.New(pool.superviseInterval)
	pool.supervisor.Start()
	go pool.superviseLoop()

	pool.logger.Infof("whirlpool started with %d workers", n)
	return pool, nil
}

// Submit dispatches fn against input/output to the next worker in
// round-robin order. The dispatch cursor is read and advanced with two
// independent, non-atomic-RMW operations: under concurrent Submit calls
// it may skip or repeat an index, which only ever costs fairness, never
// correctness, since every live worker is still a valid dispatch target.
// If the chosen worker is dead, Submit falls back to a linear scan for
// any live worker; if none is found, it returns ErrNoLiveWorker.
func (p *WhirlPool) Submit(fn Func, input, output []byte) error {
	if !p.running.Load() {
		return ErrAlreadyStopped
	}

	n := uint64(len(p.workers))
	c := p.cursor.Load()
	next := (c + 1) % n
	p.cursor.Store(next)

	idx := c % n
	w := p.workers[idx]
	if !w.isAlive() {
		w = p.findLiveWorker()
		if w == nil {
			return ErrNoLiveWorker
		}
	}

	item := WorkItem{Func: fn, Input: input, Output: output}
	if err := w.push(item); err != nil {
		if err == ErrMailboxFull {
			p.logger.Warnf("worker %d mailbox full, rejecting submit", w.Pid)
		}
		return err
	}
	return nil
}

// findLiveWorker scans the worker slice from the front for the first
// worker observed alive. Used only as Submit's fallback when the
// round-robin cursor lands on a dead worker.
func (p *WhirlPool) findLiveWorker() *Worker {
	for _, w := range p.workers {
		if w.isAlive() {
			return w
		}
	}
	return nil
}

// WorkerByPid returns the worker at pid, or ErrInvalidPid if pid is out
// of range, or ErrNotAlive if that worker is currently down awaiting
// recovery. Intended for tests and manual recovery, not production
// dispatch.
func (p *WhirlPool) WorkerByPid(pid int) (*Worker, error) {
	if pid < 0 || pid >= len(p.workers) {
		return nil, ErrInvalidPid
	}
	w := p.workers[pid]
	if !w.isAlive() {
		return nil, ErrNotAlive
	}
	return w, nil
}

// Recover rebuilds the worker at pid in place: its arena region and Pid
// are preserved, its mailbox is left untouched (any items queued while it
// was down remain for the fresh serve goroutine to drain), and a new
// serve goroutine is launched. Safe to call even if the worker is already
// alive, in which case it is restarted anyway.
func (p *WhirlPool) Recover(pid int) error {
	if !p.running.Load() {
		return ErrAlreadyStopped
	}
	if pid < 0 || pid >= len(p.workers) {
		return ErrInvalidPid
	}

	w := p.workers[pid]
	w.recover()
	p.logger.Debugf("worker %d reached state %s, restarting", pid, w.State())
	p.logger.Infof("recovered worker %d", pid)
	return nil
}

// superviseLoop scans every worker on each supervisor tick and recovers
// any observed dead, until Stop closes superDone. superExited is closed on
// return so Stop can join this goroutine before tearing down workers.
func (p *WhirlPool) superviseLoop() {
	defer close(p.superExited)
	for {
		select {
		case <-p.supervisor.Ticks:
			for _, w := range p.workers {
				if !w.isAlive() {
					if err := p.Recover(w.Pid); err != nil {
						p.logger.Errorf("supervisor failed to recover worker %d: %v", w.Pid, err)
					}
				}
			}
		case <-p.superDone:
			return
		}
	}
}

// Stop tears down the pool: stops accepting Submit calls, joins the
// supervisor goroutine, then stops every worker (joining each serve
// goroutine) and closes every mailbox. The supervisor must be joined
// before any worker is torn down: otherwise a supervisor tick already past
// the running check could call Recover concurrently with this teardown and
// resurrect a worker Stop just stopped, leaking its serve goroutine.
// Idempotent: calling Stop more than once is a no-op after the first call
// completes.
func (p *WhirlPool) Stop() {
	p.stopOnce.Do(func() {
		p.running.Store(false)
		close(p.superDone)
		p.supervisor.Stop()
		<-p.superExited

		for _, w := range p.workers {
			w.recoverMu.Lock()
			w.stop()
			w.mailbox.Close()
			w.recoverMu.Unlock()
		}
		p.logger.Info("whirlpool stopped")
	})
}
