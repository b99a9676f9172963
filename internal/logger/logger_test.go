package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// JSON形式で属性付きログが出力されることを検証する。
func TestSetup_EmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelInfo)

	log.Info("server started", slog.String("port", "8080"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (output: %s)", err, buf.String())
	}
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v, want %q", entry["msg"], "server started")
	}
	if entry["port"] != "8080" {
		t.Errorf("port = %v, want %q", entry["port"], "8080")
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
}

// 指定レベル未満のログが抑制されることを検証する。
func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelWarn)

	log.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("info log should be suppressed at warn level, got: %s", buf.String())
	}

	log.Warn("should be emitted")
	if buf.Len() == 0 {
		t.Error("warn log should be emitted at warn level")
	}
}
