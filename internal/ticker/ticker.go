/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
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

// Package ticker provides the periodic-scan timer behind the supervisor's
// dead-worker sweep. Trimmed to the New/Start/Stop/Ticks surface the pool
// uses (New and Start in whirlpool.New, Stop in WhirlPool.Stop, Ticks in
// superviseLoop); a Ticking accessor isn't exposed because the supervisor
// never needs to ask whether its own timer is running.
package ticker

import (
	"sync"
	"time"
)

// Ticker delivers ticks on Ticks at a fixed interval until Stop is called.
// whirlpool runs exactly one: the supervisor's dead-worker sweep.
type Ticker struct {
	Ticks     chan time.Time
	intervals time.Duration
	mutex     sync.Mutex
	ticking   bool
	stopCh    chan bool
}

// New creates a Ticker that ticks every intervals. Slow receivers don't
// back up the ticker: a tick is dropped rather than queued if superviseLoop
// hasn't drained the previous one yet.
func New(intervals time.Duration) *Ticker {
	if intervals <= 0 {
		panic("intervals must be greater than zero")
	}
	return &Ticker{
		Ticks:     make(chan time.Time),
		intervals: intervals,
		stopCh:    make(chan bool),
		ticking:   false,
	}
}

// Start begins delivering ticks on Ticks until Stop is called. Starting an
// already-started Ticker is a no-op.
func (t *Ticker) Start() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.ticking {
		go t.tickingLoop()
		t.ticking = true
	}
}

// Stop halts tick delivery. No tick is sent on Ticks after Stop returns and
// before Start is called again.
func (t *Ticker) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.ticking {
		t.ticking = false
		t.stopCh <- true
	}
}

func (t *Ticker) tickingLoop() {
	ticker := time.NewTicker(t.intervals)
	for {
		select {
		case tc := <-ticker.C:
			select {
			case t.Ticks <- tc:
			default:
			}
		case <-t.stopCh:
			ticker.Stop()
			return
		}
	}
}
