package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger levels
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// File logger modes
const (
	ModeAppend    = "append"
	ModeOverwrite = "overwrite"
)

// AppName names the root logger
const AppName = "pdflight"

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
	MaxSize     int    `yaml:"max_size,omitempty" validate:"gte=0"`
	MaxBackups  int    `yaml:"max_backups,omitempty" validate:"gte=0"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns the program logger: console output on stderr, leaving
// stdout to converted documents, teed with an optional file log.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	consoleCore := newConsoleCore(conf.ConsoleLogger.Level, os.Stderr)

	fileCore, err := newFileCore(conf.FileLogger)
	if err != nil {
		return nil, err
	}

	log := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller())
	return log.Named(AppName), nil
}

func levelEnabler(level string) (zapcore.LevelEnabler, bool) {
	switch level {
	case LevelDebug:
		return zap.NewAtomicLevelAt(zap.DebugLevel), true
	case LevelNormal:
		return zap.NewAtomicLevelAt(zap.InfoLevel), true
	}
	return nil, false
}

func newConsoleCore(level string, stream *os.File) zapcore.Core {
	enabler, ok := levelEnabler(level)
	if !ok {
		return zapcore.NewNopCore()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if term.IsTerminal(int(stream.Fd())) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(stream), enabler)
}

func newFileCore(conf LoggerConfig) (zapcore.Core, error) {
	enabler, ok := levelEnabler(conf.Level)
	if !ok {
		return zapcore.NewNopCore(), nil
	}

	var ws zapcore.WriteSyncer
	if conf.Mode == ModeAppend {
		// append keeps the log across runs, so it rotates
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.Destination,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
		})
	} else {
		f, err := os.OpenFile(conf.Destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.Destination, err)
		}
		ws = zapcore.Lock(f)
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(encoder, ws, enabler), nil
}
