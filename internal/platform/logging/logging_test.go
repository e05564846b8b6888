package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zap.DebugLevel,
		"warn":    zap.WarnLevel,
		"error":   zap.ErrorLevel,
		"unknown": zap.InfoLevel,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewWithSinksSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithSinks("info", zapcore.AddSync(&out), zapcore.AddSync(&errOut))

	logger.Debug("hidden")
	logger.Info("hello", zap.String("k", "v"))
	logger.Warn("careful")
	_ = logger.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(out.Bytes()), &entry); err != nil {
		t.Fatalf("stdout is not a single json entry: %v (%q)", err, out.String())
	}
	if entry["message"] != "hello" || entry["level"] != "info" || entry["k"] != "v" {
		t.Fatalf("unexpected stdout entry: %+v", entry)
	}
	if !bytes.Contains(errOut.Bytes(), []byte(`"careful"`)) {
		t.Fatalf("expected warn entry on stderr, got %q", errOut.String())
	}
	if bytes.Contains(out.Bytes(), []byte("hidden")) {
		t.Fatal("debug entry should be filtered at info level")
	}
}
