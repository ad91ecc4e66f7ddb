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

package log

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZap(InfoLevel, &buf)
		logger.Info("pool started")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "pool started", entry["msg"])
		require.Equal(t, "info", entry["level"])
	})

	t.Run("With level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZap(WarningLevel, &buf)
		logger.Debug("should not appear")
		logger.Info("should not appear either")
		require.Zero(t, buf.Len())

		logger.Warn("should appear")
		require.NotZero(t, buf.Len())
	})

	t.Run("With structured fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZap(InfoLevel, &buf).With("pid", 2, "recovered", true)
		logger.Info("worker restarted")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.EqualValues(t, 2, entry["pid"])
		require.Equal(t, true, entry["recovered"])
	})

	t.Run("With LogLevel", func(t *testing.T) {
		logger := NewZap(ErrorLevel, io.Discard)
		require.Equal(t, ErrorLevel, logger.LogLevel())
	})
}

func TestDiscardLogger(t *testing.T) {
	require.Equal(t, InvalidLevel, DiscardLogger.LogLevel())
	require.NotPanics(t, func() {
		DiscardLogger.Info("ignored")
		DiscardLogger.Debugf("ignored %d", 1)
	})
	require.Same(t, DiscardLogger, DiscardLogger.With("k", "v"))
}
