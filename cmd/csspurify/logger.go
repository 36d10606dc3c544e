package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig selects log verbosity and an optional rotated log file
type LoggerConfig struct {
	Verbose bool   // Debug level on the console
	Quiet   bool   // Errors only on the console
	LogFile string // JSON log file, rotated by size; empty disables it
}

// newLogger builds the CLI logger: a console core on w and, if configured,
// a JSON core writing to a rotated file. The console only shows warnings
// unless verbose, so a successful run prints nothing.
func newLogger(w io.Writer, cfg LoggerConfig) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case cfg.Quiet:
		level = zapcore.ErrorLevel
	case cfg.Verbose:
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if consoleColors(w) {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), level),
	}

	if cfg.LogFile != "" {
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		// lumberjack handles file rotation and thread-safe writes.
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), fileWriter, zapcore.DebugLevel))
	}

	return zap.New(zapcore.NewTee(cores...)).Named("csspurify")
}

// consoleColors reports whether level names may be colored: w must be a
// terminal and NO_COLOR unset
func consoleColors(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
