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
	"time"

	"github.com/tochemey/whirlpool/log"
)

// Option is the interface that applies a WhirlPool option.
type Option interface {
	// Apply sets the Option value of a WhirlPool.
	Apply(pool *WhirlPool)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(pool *WhirlPool)

// Apply applies the option.
func (f OptionFunc) Apply(pool *WhirlPool) {
	f(pool)
}

// WithIdleBackoff sets how long a worker sleeps after finding its mailbox
// empty before polling it again. Defaults to 1ms.
func WithIdleBackoff(d time.Duration) Option {
	return OptionFunc(func(pool *WhirlPool) {
		pool.idleBackoff = d
	})
}

// WithSuperviseInterval sets how often the supervisor scans for dead
// workers. Defaults to 10ms.
func WithSuperviseInterval(d time.Duration) Option {
	return OptionFunc(func(pool *WhirlPool) {
		pool.superviseInterval = d
	})
}

// WithLogger sets the Logger a WhirlPool reports recovery and lifecycle
// events to. Defaults to log.DiscardLogger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(pool *WhirlPool) {
		pool.logger = logger
	})
}
