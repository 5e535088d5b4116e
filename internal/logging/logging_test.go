package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/saadjs/fittrack/internal/logging"
)

func TestNewHonorsLevelAndFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"", logging.FormatConsole, logging.FormatJSON} {
		logger, err := logging.New("warn", format)
		if err != nil {
			t.Fatalf("new logger %q: %v", format, err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("expected info to be disabled at warn level for %q", format)
		}
		if !logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Fatalf("expected error to be enabled for %q", format)
		}
	}
}

func TestNewRejectsUnknownInputs(t *testing.T) {
	t.Parallel()

	if _, err := logging.New("loud", "console"); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := logging.New("info", "xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
