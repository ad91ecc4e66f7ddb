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

package whirlpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/whirlpool"
	"github.com/tochemey/whirlpool/internal/testkit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scenario 1: submit a batch of work and observe every item executed.
func TestSubmitExecutesWork(t *testing.T) {
	pool, err := whirlpool.New(4, 1024, 16)
	require.NoError(t, err)
	defer pool.Stop()

	const n = 200
	var executed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		fn := func(input, output []byte) {
			executed.Add(1)
			wg.Done()
		}
		require.NoError(t, pool.Submit(fn, nil, nil))
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("only %d/%d items executed before timeout", executed.Load(), n)
	}
	require.EqualValues(t, n, executed.Load())
}

// scenario 2: dispatch spreads work across every live worker in round-robin
// order, not just one. Mirrors spec.md §8 scenario 2 exactly: n=3, cap=10,
// submit 9 items, each worker should observe 3 pushes, accepting the
// documented 2-4 best-effort race band on cursor.
func TestSubmitRoundRobinDistribution(t *testing.T) {
	pool, err := whirlpool.New(3, 1024, 10)
	require.NoError(t, err)
	defer pool.Stop()

	const n = 9
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		fn := func(input, output []byte) { wg.Done() }
		require.NoError(t, pool.Submit(fn, nil, nil))
	}
	wg.Wait()

	var total uint64
	for pid := 0; pid < 3; pid++ {
		w, err := pool.WorkerByPid(pid)
		require.NoError(t, err)
		require.True(t, testkit.Eventually(func() bool { return w.Processed() > 0 }, time.Second, time.Millisecond))
		processed := w.Processed()
		require.GreaterOrEqual(t, processed, uint64(2), "worker %d processed too few items: %d", pid, processed)
		require.LessOrEqual(t, processed, uint64(4), "worker %d processed too many items: %d", pid, processed)
		total += processed
	}
	require.EqualValues(t, n, total)
}

// scenario 3: a full mailbox rejects Submit without blocking, and draining
// it unblocks subsequent submits.
func TestSubmitFullMailboxThenUnblock(t *testing.T) {
	pool, err := whirlpool.New(1, 1024, 1, whirlpool.WithIdleBackoff(time.Hour))
	require.NoError(t, err)
	defer pool.Stop()

	block := make(chan struct{})
	blocker := func(input, output []byte) { <-block }

	require.NoError(t, pool.Submit(blocker, nil, nil))
	require.True(t, testkit.Eventually(func() bool {
		return pool.Submit(func([]byte, []byte) {}, nil, nil) == nil
	}, time.Second, time.Millisecond))

	err = pool.Submit(func([]byte, []byte) {}, nil, nil)
	require.ErrorIs(t, err, whirlpool.ErrMailboxFull)

	close(block)
}

// scenario 4 & 5: a crashed worker is recovered by the supervisor and by
// explicit Recover, end to end.
func TestSupervisorRecoversCrashedWorker(t *testing.T) {
	pool, err := whirlpool.New(2, 1024, 16, whirlpool.WithSuperviseInterval(2*time.Millisecond))
	require.NoError(t, err)
	defer pool.Stop()

	w0, err := pool.WorkerByPid(0)
	require.NoError(t, err)
	w0.Crash()

	require.True(t, testkit.Eventually(func() bool {
		w, err := pool.WorkerByPid(0)
		return err == nil && w != nil
	}, time.Second, time.Millisecond))

	var executed atomic.Bool
	fn := func(input, output []byte) { executed.Store(true) }
	require.NoError(t, pool.Submit(fn, nil, nil))
	require.True(t, testkit.Eventually(executed.Load, time.Second, time.Millisecond))
}

func TestExplicitRecover(t *testing.T) {
	pool, err := whirlpool.New(2, 1024, 16, whirlpool.WithSuperviseInterval(time.Hour))
	require.NoError(t, err)
	defer pool.Stop()

	w1, err := pool.WorkerByPid(1)
	require.NoError(t, err)
	w1.Crash()

	_, err = pool.WorkerByPid(1)
	require.ErrorIs(t, err, whirlpool.ErrNotAlive)

	require.NoError(t, pool.Recover(1))

	w1Again, err := pool.WorkerByPid(1)
	require.NoError(t, err)
	require.Equal(t, 1, w1Again.Pid)
}

func TestRecoverInvalidPid(t *testing.T) {
	pool, err := whirlpool.New(2, 1024, 16)
	require.NoError(t, err)
	defer pool.Stop()

	require.ErrorIs(t, pool.Recover(-1), whirlpool.ErrInvalidPid)
	require.ErrorIs(t, pool.Recover(99), whirlpool.ErrInvalidPid)
}

// scenario 6: clean shutdown under load leaves no pool-owned goroutine
// running, verified by goleak via TestMain.
func TestStopUnderLoadLeavesNoGoroutines(t *testing.T) {
	pool, err := whirlpool.New(8, 1024, 32)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 500; i++ {
		wg.Add(1)
		fn := func(input, output []byte) { wg.Done() }
		_ = pool.Submit(fn, nil, nil)
	}

	pool.Stop()
	// Stop is idempotent.
	pool.Stop()
}

func TestNewValidatesArguments(t *testing.T) {
	_, err := whirlpool.New(0, 1024, 16)
	require.ErrorIs(t, err, whirlpool.ErrInitFailure)

	_, err = whirlpool.New(1, 0, 16)
	require.ErrorIs(t, err, whirlpool.ErrInitFailure)

	_, err = whirlpool.New(1, 1024, 0)
	require.ErrorIs(t, err, whirlpool.ErrInitFailure)
}

func TestSubmitAfterStopReturnsErrAlreadyStopped(t *testing.T) {
	pool, err := whirlpool.New(1, 1024, 4)
	require.NoError(t, err)
	pool.Stop()

	err = pool.Submit(func([]byte, []byte) {}, nil, nil)
	require.ErrorIs(t, err, whirlpool.ErrAlreadyStopped)

	err = pool.Recover(0)
	require.ErrorIs(t, err, whirlpool.ErrAlreadyStopped)
}
