package config_test

import (
	"testing"

	"github.com/screfy/ldw/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name  string
		level string
		json  bool
	}{
		{name: "debug text", level: "debug", json: false},
		{name: "info json", level: "info", json: true},
		{name: "warn text", level: "warn", json: false},
		{name: "error json", level: "error", json: true},
		{name: "unknown level defaults to info", level: "verbose", json: false},
		{name: "empty level defaults to info", level: "", json: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{
				Level: tt.level,
				JSON:  tt.json,
			}

			result, err := logger.Configure()
			if err != nil {
				t.Fatalf("Configure() unexpected error = %v", err)
			}
			if result == nil {
				t.Fatal("Configure() returned nil logger")
			}

			// Verify logger can be used at all levels
			result.Debug("debug message")
			result.Info("info message")
			result.Warn("warn message")
			result.Error("error message")
		})
	}
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	if len(flags) != 2 {
		t.Errorf("Flags() returned %d flags, want 2", len(flags))
	}

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		switch f := flag.(type) {
		case interface{ Names() []string }:
			names := f.Names()
			if len(names) > 0 {
				flagNames[names[0]] = true
			}
		}
	}

	if !flagNames["log-level"] {
		t.Error("Missing log-level flag")
	}
	if !flagNames["log-json"] {
		t.Error("Missing log-json flag")
	}
}
