// Package logging builds the application's zap logger.
//
// Records are JSON with "ts" and "severity" keys and a constant "service"
// field. They go to stderr, or to a size-rotated file when a path is set.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Service is attached to every record.
const Service = "fabrica"

// Options selects level and destination.
type Options struct {
	Level string
	// File enables rotation through lumberjack; empty means stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger from opt.
func New(opt Options) (*zap.Logger, error) {
	level, err := ParseLevel(opt.Level)
	if err != nil {
		return nil, err
	}
	var w io.Writer = os.Stderr
	if opt.File != "" {
		w = &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    orDefault(opt.MaxSizeMB, 10),
			MaxBackups: orDefault(opt.MaxBackups, 3),
			MaxAge:     orDefault(opt.MaxAgeDays, 28),
			Compress:   true,
		}
	}
	return NewWithWriter(level, w), nil
}

// NewWithWriter builds a JSON logger writing to w.
func NewWithWriter(level zapcore.Level, w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.LevelKey = "severity"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller()).With(zap.String("service", Service))
}

// ParseLevel maps debug|info|warn|error onto zap levels; empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
