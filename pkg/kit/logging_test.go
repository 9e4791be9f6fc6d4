package kit

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("prices", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be enabled")
	}

	def, err := NewLogger("prices", "")
	if err != nil {
		t.Fatalf("NewLogger default: %v", err)
	}
	if !def.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("default level must be info")
	}

	if _, err := NewLogger("prices", "chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
