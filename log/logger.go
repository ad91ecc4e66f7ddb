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

// Package log provides the structured-logging facade used by the pool and
// its workers to report liveness and lifecycle events. It is never used to
// swallow an error that whirlpool's public API must return to the caller.
package log

import (
	"io"
	golog "log"
)

// Logger represents an active logging object that generates lines of
// output to one or more io.Writer.
type Logger interface {
	// Debug starts a new message with debug level.
	Debug(...any)
	// Debugf starts a new message with debug level.
	Debugf(string, ...any)
	// Info starts a new message with info level.
	Info(...any)
	// Infof starts a new message with info level.
	Infof(string, ...any)
	// Warn starts a new message with warn level.
	Warn(...any)
	// Warnf starts a new message with warn level.
	Warnf(string, ...any)
	// Error starts a new message with error level.
	Error(...any)
	// Errorf starts a new message with error level.
	Errorf(string, ...any)
	// Fatal starts a new message with fatal level and calls os.Exit(1).
	Fatal(...any)
	// Fatalf starts a new message with fatal level and calls os.Exit(1).
	Fatalf(string, ...any)
	// Panic starts a new message with panic level and calls panic().
	Panic(...any)
	// Panicf starts a new message with panic level and calls panic().
	Panicf(string, ...any)
	// With returns a Logger that includes the given key-value pairs in every
	// subsequent log entry.
	With(keyValues ...any) Logger
	// LogLevel returns the level this logger is currently configured at.
	LogLevel() Level
	// LogOutput returns the writers this logger is currently configured with.
	LogOutput() []io.Writer
	// StdLogger returns a standard library logger that writes through this Logger.
	StdLogger() *golog.Logger
}
