package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestWriteIncludesLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("jobsearch.run_not_succeeded", map[string]any{
		"status": "FAILED",
		"err":    errors.New("boom"),
		"level":  "ignored",
	})

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", payload["level"])
	}
	if payload["msg"] != "jobsearch.run_not_succeeded" {
		t.Fatalf("unexpected msg %v", payload["msg"])
	}
	if payload["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %v", payload["err"])
	}
	if payload["status"] != "FAILED" {
		t.Fatalf("unexpected status %v", payload["status"])
	}
}
