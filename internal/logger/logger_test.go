// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, testCase := range testCases {
		t.Run("input="+testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.expected, ParseLevel(testCase.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("Nil Config", func(t *testing.T) {
		log := New(nil)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})
	t.Run("Debug Level", func(t *testing.T) {
		log := New(&Config{Level: "debug", Format: "json", Output: "stdout"})
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
	t.Run("File Output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flowrace.log")
		log := New(&Config{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: path,
		})
		require.NotNil(t, log)
		log.Info("hello")
		require.NoError(t, log.Sync())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
	})
	t.Run("File Output Without Path", func(t *testing.T) {
		log := New(&Config{Level: "info", Output: "file"})
		require.NotNil(t, log)
		assert.NotPanics(t, func() {
			log.Info("dropped")
		})
	})
}
