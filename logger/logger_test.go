package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel(zapcore.InfoLevel)

	if ProgressLogger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled by default")
	}
	SetLevel(zapcore.DebugLevel)
	if !ProgressLogger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be enabled")
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
