package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by the loggers of this package.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// ProgressLogger logs the main steps of the rendering, at debug level.
var ProgressLogger = newLogger("flexrender.progress")

// WarningLogger emits a warning for each non fatal error, like unsupported CSS
// properties or invalid values replaced by their initial value.
var WarningLogger = newLogger("flexrender.warning")

func newLogger(name string) *zap.SugaredLogger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stdout), level)
	return zap.New(core).Named(name).Sugar()
}

// SetLevel changes the minimum level of the package loggers.
func SetLevel(l zapcore.Level) { level.SetLevel(l) }

// ParseLevel accepts "debug", "info", "warn" and "error".
func ParseLevel(s string) (zapcore.Level, error) {
	return zapcore.ParseLevel(s)
}
