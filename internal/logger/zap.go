package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

type Logger struct {
	*zap.SugaredLogger
}

// Init configures the package logger at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func Init(level string) Logger {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		lvl,
	)

	logger = zap.New(core, zap.AddCaller()).Sugar()

	return Logger{SugaredLogger: logger}
}

// GetLogger returns the configured logger, or a development logger when
// Init was never called.
func GetLogger() Logger {
	if logger == nil {
		zaplog, _ := zap.NewDevelopment()
		logger = zaplog.Sugar()
	}

	return Logger{SugaredLogger: logger}
}

// Close flushes buffered log entries.
func Close() error {
	if logger == nil {
		return nil
	}

	return logger.Sync()
}
