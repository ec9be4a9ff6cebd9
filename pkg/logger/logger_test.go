package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/gameradar/radar/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSetsGlobalLevel(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "warn",
		LogFormat: "json",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New returned nil")
	}

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("global level = %v, want warn", zerolog.GlobalLevel())
	}

	// Chained field loggers must not share state with the parent.
	child := log.WithField("signal", "steam_ccu")
	if child == log {
		t.Error("WithField should return a new logger")
	}
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
	log.WithFields(map[string]interface{}{"k": 1}).Info("e")
	log.WithError(nil).Warn("f")
}
