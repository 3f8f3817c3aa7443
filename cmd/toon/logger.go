package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger returns a console logger writing to stderr. Only warnings and
// errors are shown unless verbose is set. When file is not empty the same
// entries are also written there as JSON, rotated by size.
func newLogger(verbose bool, file string, stderr io.Writer) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(stderr), level),
	}

	if file != "" {
		ws := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), ws, level))
	}

	return zap.New(zapcore.NewTee(cores...))
}
