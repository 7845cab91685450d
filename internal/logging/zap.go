package logging

import (
	"errors"
	"os"
	"sort"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger on top of zap.
type ZapLogger struct {
	log   *zap.Logger
	level zap.AtomicLevel
}

// New builds a zap-backed logger writing to stderr. Development mode uses the
// console encoder, otherwise output is JSON.
func New(level Level, development bool) (*ZapLogger, error) {
	atom := zap.NewAtomicLevelAt(toZap(level))

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = atom
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{log: log, level: atom}, nil
}

// NewWithCore wraps an existing core. The level gates messages before they
// reach the core.
func NewWithCore(core zapcore.Core, level Level) *ZapLogger {
	atom := zap.NewAtomicLevelAt(toZap(level))
	gated, err := zapcore.NewIncreaseLevelCore(core, atom)
	if err != nil {
		// core is already stricter than level
		gated = core
	}
	return &ZapLogger{log: zap.New(gated), level: atom}
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	z.log.Debug(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	z.log.Info(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	z.log.Warn(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	z.log.Error(msg, zf...)
}

func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		log:   z.log.With(toZapFields([]Fields{fields})...),
		level: z.level,
	}
}

func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(toZap(level))
}

// Sync flushes the logger. Errors from syncing a terminal are ignored.
func (z *ZapLogger) Sync() error {
	err := z.log.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, os.ErrInvalid) {
		return nil
	}
	return err
}

func toZap(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZapFields flattens field maps in key order so output is stable.
func toZapFields(fields []Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	merged := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, merged[k]))
	}
	return out
}
