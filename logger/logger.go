package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the debug log file
const (
	DefaultLogPath    = "logs/inkbeat.log"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Config selects log destinations
// Logging is off unless Debug is set; stdout belongs to the terminal UI
type Config struct {
	Debug      bool
	Level      string    // debug, info, warn, error
	OutputPath string    // Rotated JSON file; empty uses DefaultLogPath
	Console    io.Writer // Optional human-readable sink, e.g. stderr for headless commands
	MaxSize    int       // Megabytes
	MaxBackups int
	MaxAge     int // Days
	Compress   bool
}

// ParseLevel maps a level name to a zap level, defaulting to debug
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(name) {
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New builds a logger from cfg; the returned closer flushes and releases the file
func New(cfg Config) (*zap.Logger, func(), error) {
	level := ParseLevel(cfg.Level)
	var cores []zapcore.Core

	if cfg.Console != nil {
		enc := encoderConfig()
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.AddSync(cfg.Console),
			level,
		))
	}

	var rotator *lumberjack.Logger
	if cfg.Debug {
		path := cfg.OutputPath
		if path == "" {
			path = DefaultLogPath
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		rotator = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    orDefault(cfg.MaxSize, DefaultMaxSizeMB),
			MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
			MaxAge:     orDefault(cfg.MaxAge, DefaultMaxAgeDays),
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	log := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	closer := func() {
		_ = log.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return log, closer, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
