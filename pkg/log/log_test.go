// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package log

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		_, _ = NewLog(SetDefaults())
	})
}

func TestConf_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    *Conf
		wantErr bool
	}{
		{name: "stdout", conf: &Conf{Output: OutputStdout}},
		{name: "empty output means stdout", conf: &Conf{}},
		{name: "file without path", conf: &Conf{Output: OutputFile}, wantErr: true},
		{name: "unknown output", conf: &Conf{Output: "syslog"}, wantErr: true},
		{name: "file with defaults filled", conf: &Conf{Output: OutputFile, Path: "/tmp/logs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.conf.Output == OutputFile {
				assert.Equal(t, "hackhub.log", tt.conf.Filename)
				assert.Equal(t, 100, tt.conf.MaxSizeMb)
				assert.Equal(t, 10, tt.conf.MaxBackups)
				assert.Equal(t, 7, tt.conf.KeepDays)
			}
		})
	}
}

func TestNewLog_File(t *testing.T) {
	resetLogger(t)
	dir := t.TempDir()

	l, err := NewLog(&Conf{Output: OutputFile, Path: dir, Filename: "test.log", Level: "info"})
	require.NoError(t, err)

	Infow("written through the package logger", "n", 1)
	l.Debug("filtered out")
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "written through the package logger")
	assert.NotContains(t, string(content), "filtered out")
}

func TestNewLog_InstallsGlobal(t *testing.T) {
	resetLogger(t)

	_, err := NewLog(&Conf{Level: "WARN"})
	require.NoError(t, err)
	assert.True(t, GetLogger().Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, GetLogger().Desugar().Core().Enabled(zapcore.InfoLevel))

	_, err = NewLog(&Conf{Output: "syslog"})
	assert.Error(t, err)
}

func TestRequestIdContext(t *testing.T) {
	ctx := WithRequestId(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestId(ctx))
	assert.Empty(t, RequestId(WithRequestId(context.Background(), "")))

	assert.NotPanics(t, func() {
		Ctx(ctx).Infow("message with request id")
		Ctx(context.Background()).Infow("message without request id")
	})
}

func TestConcurrentLogging(t *testing.T) {
	resetLogger(t)
	_, err := NewLog(SetDefaults())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Infow("concurrent message", "number", i)
			Debugw("debug message", "number", i)
			Warnw("warn message", "number", i)
		}()
	}
	wg.Wait()
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"INVALID", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}
