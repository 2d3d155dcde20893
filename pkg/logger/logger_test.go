package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestInfo_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "")
	InitWithWriter("production", &buf)

	Info("recommendation served", "learner_id", 12, "platform", "Udemy", "ok", true)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "recommendation served" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["learner_id"] != float64(12) || entry["platform"] != "Udemy" || entry["ok"] != true {
		t.Errorf("fields = %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestError_AttachesBareError(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "")
	InitWithWriter("production", &buf)

	Error("reload failed", errors.New("boom"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestDebug_FilteredOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "")
	InitWithWriter("production", &buf)

	Debug("noisy", "k", "v")
	if buf.Len() != 0 {
		t.Errorf("debug written at info level: %q", buf.String())
	}

	t.Setenv("LOG_LEVEL", "debug")
	InitWithWriter("production", &buf)
	Debug("noisy", "k", "v")
	if buf.Len() == 0 {
		t.Error("LOG_LEVEL=debug did not enable debug output")
	}
}
