package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// TestSetup_WritesJSON はログがJSON形式で出力されることを検証する。
func TestSetup_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf)

	log.Info("test message", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want %q", entry["key"], "value")
	}
}

// TestSetup_SuppressesDebug はINFO未満のレベルが出力されないことを検証する。
func TestSetup_SuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf)

	log.Debug("should not appear")

	if buf.Len() != 0 {
		t.Errorf("debug log should be suppressed, got: %s", buf.String())
	}
}

// TestSetupDefault_SetsGlobalLogger はグローバルロガーが設定されることを検証する。
func TestSetupDefault_SetsGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupDefault(&buf)

	slog.Info("global log")

	if buf.Len() == 0 {
		t.Error("expected global logger to write to the provided writer")
	}
}
