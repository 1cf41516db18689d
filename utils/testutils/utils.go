package testutils

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benoitkugler/flexrender/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// CapturedLogs stores the warnings emitted while it is active.
type CapturedLogs struct {
	logs     *observer.ObservedLogs
	previous *zap.SugaredLogger
}

// CaptureLogs replaces logger.WarningLogger until one of the
// Assert methods is called.
func CaptureLogs() *CapturedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	out := &CapturedLogs{logs: logs, previous: logger.WarningLogger}
	logger.WarningLogger = zap.New(core).Sugar()
	return out
}

func (c *CapturedLogs) restore() { logger.WarningLogger = c.previous }

// Logs returns the captured messages, and stops the capture.
func (c *CapturedLogs) Logs() []string {
	c.restore()
	var out []string
	for _, entry := range c.logs.All() {
		out = append(out, entry.Message)
	}
	return out
}

func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if l := c.Logs(); len(l) != 0 {
		t.Fatalf("expected no logs, got (%d): \n%s", len(l), strings.Join(l, "\n"))
	}
}

// CheckEqual asserts that the captured messages contain the given
// substrings, in order.
func (c *CapturedLogs) CheckEqual(refs []string, t *testing.T) {
	t.Helper()
	gots := c.Logs()
	if len(gots) != len(refs) {
		t.Fatalf("expected %d logs, got %d: %v", len(refs), len(gots), gots)
	}
	for i, ref := range refs {
		if !strings.Contains(gots[i], ref) {
			t.Fatalf("expected log containing %q, got %q", ref, gots[i])
		}
	}
}
