package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  string
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("built scene", "name", "panel") }, "built scene"},
		{"debug hidden at info", log.InfoLevel, func(l *log.Logger) { l.Debug("activating") }, ""},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("activating", "count", 3) }, "count=3"},
		{"warn passes at info", log.InfoLevel, func(l *log.Logger) { l.Warn("redis unavailable") }, "redis unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("unexpected output %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("tick")
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("output %q does not start with an HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Checked panel")

	if !regexp.MustCompile(`Checked panel \(\d+(\.\d+)?m?s\)`).MatchString(buf.String()) {
		t.Errorf("output %q lacks the message with elapsed time", buf.String())
	}
}
