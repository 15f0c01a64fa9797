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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	OutputStdout = "stdout"
	OutputFile   = "file"
)

var global atomic.Pointer[zap.SugaredLogger]

func init() {
	global.Store(zap.NewNop().Sugar())
}

// ProviderSet is the Wire provider set for the log package.
var ProviderSet = wire.NewSet(ProvideLogger)

// Logger marks that the global logger has been installed. Components that log
// during construction take it as a dependency so Wire orders them after it.
type Logger struct {
	Log *zap.SugaredLogger
}

func ProvideLogger(conf *Conf) (*Logger, error) {
	l, err := NewLog(conf)
	if err != nil {
		return nil, err
	}
	return &Logger{Log: l.Sugar()}, nil
}

// Conf is the [log] section. File rotation settings are ignored for stdout.
type Conf struct {
	Output     string
	Path       string
	Filename   string
	Level      string
	KeepDays   int
	MaxSizeMb  int
	MaxBackups int
}

func SetDefaults() *Conf {
	return &Conf{
		Output:     OutputStdout,
		Path:       "./logs",
		Filename:   "hackhub.log",
		Level:      "INFO",
		KeepDays:   7,
		MaxSizeMb:  100,
		MaxBackups: 10,
	}
}

// Validate rejects an unknown output and fills zero rotation settings.
func (c *Conf) Validate() error {
	switch c.Output {
	case "", OutputStdout:
		return nil
	case OutputFile:
	default:
		return fmt.Errorf("unknown log output %q", c.Output)
	}
	if c.Path == "" {
		return fmt.Errorf("log path is required for file output")
	}
	if c.Filename == "" {
		c.Filename = "hackhub.log"
	}
	if c.MaxSizeMb <= 0 {
		c.MaxSizeMb = 100
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 10
	}
	if c.KeepDays <= 0 {
		c.KeepDays = 7
	}
	return nil
}

func (c *Conf) writer() zapcore.WriteSyncer {
	if c.Output != OutputFile {
		return zapcore.Lock(os.Stdout)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(c.Path, c.Filename),
		MaxSize:    c.MaxSizeMb,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.KeepDays,
		Compress:   true,
	})
}

// NewLog builds a logger from conf and installs it as the package logger.
func NewLog(conf *Conf) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	core := zapcore.NewCore(encoder, conf.writer(), parseLogLevel(conf.Level))
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	global.Store(l.Sugar())
	l.Sugar().Debugw("log initialized", "output", conf.Output, "level", conf.Level)
	return l, nil
}

func GetLogger() *zap.SugaredLogger {
	return global.Load()
}

func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = "time"
	ec.MessageKey = "msg"
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.DateTime))
	}
	ec.EncodeDuration = zapcore.StringDurationEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return ec
}

// parseLogLevel accepts zap's level names in any case plus WARNING; anything
// else falls back to info.
func parseLogLevel(level string) zapcore.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		return zapcore.WarnLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil || name == "" {
		return zapcore.InfoLevel
	}
	return lvl
}
