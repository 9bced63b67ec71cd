// Package logging builds the zap logger used across the service.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	// FormatAuto picks color on a terminal and json otherwise.
	FormatAuto    Format = "auto"
	FormatConsole Format = "console"
	FormatColor   Format = "color"
	FormatJSON    Format = "json"
)

// Config holds logging configuration settings.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

func (l Level) Validate() error {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidLevel, l)
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (f Format) Validate() error {
	switch f {
	case FormatAuto, FormatConsole, FormatColor, FormatJSON:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
}

// Resolve turns FormatAuto into a concrete format for the given file descriptor.
func (f Format) Resolve(fd int) Format {
	if f != FormatAuto {
		return f
	}
	if term.IsTerminal(fd) {
		return FormatColor
	}
	return FormatJSON
}

// New creates a configured zap logger writing to stdout.
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Level.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}
	return newLogger(cfg, zapcore.Lock(os.Stdout), cfg.Format.Resolve(int(os.Stdout.Fd()))), nil
}

func newLogger(cfg Config, out zapcore.WriteSyncer, format Format) *zap.Logger {
	var encoder zapcore.Encoder
	switch format {
	case FormatJSON:
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(ec)
	case FormatColor:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(ec)
	default:
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(cfg.Level.zapLevel()))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
