package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"info", logrus.InfoLevel},
		{"not a level", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, tc := range cases {
		if got := NewLogger(tc.level).GetLevel(); got != tc.want {
			t.Errorf("NewLogger(%q) level = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestNewLoggerFormatter(t *testing.T) {
	logger := NewLogger("info")
	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	if !ok {
		t.Fatalf("Expected text formatter, got %T", logger.Formatter)
	}
	if !formatter.FullTimestamp {
		t.Error("Expected full timestamps")
	}
}
