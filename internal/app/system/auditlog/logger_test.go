package auditlog

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLogger_WritesEventsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := New(Config{File: path, MaxSizeMB: 1}, zap.NewNop())
	defer l.Close()

	req := httptest.NewRequest("POST", "/api/files", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7")

	l.FileCreated(req, "file-1")
	l.FileOpened(req, "file-1", true)
	l.FileArchived(req, "file-1", true)
	l.FileArchived(req, "file-1", false)
	l.FileDeleted(req, "file-1")
	l.SettingsChanged(req, true)

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 6 {
		t.Fatalf("audit lines = %d, want 6", len(lines))
	}

	wantEvents := []string{
		EventFileCreated,
		EventFileOpened,
		EventFileArchived,
		EventFileUnarchived,
		EventFileDeleted,
		EventSettingsChanged,
	}
	for i, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if entry["event_type"] != wantEvents[i] {
			t.Errorf("line %d event_type = %v, want %s", i, entry["event_type"], wantEvents[i])
		}
		if entry["audit"] != true {
			t.Errorf("line %d missing audit marker", i)
		}
		if entry["ip"] != "10.0.0.7" {
			t.Errorf("line %d ip = %v, want forwarded address", i, entry["ip"])
		}
	}
}

func TestLogger_NoFileSink(t *testing.T) {
	l := New(Config{}, zap.NewNop())
	defer l.Close()

	// Events go only to the application log; nothing should panic.
	l.FileCreated(httptest.NewRequest("POST", "/", nil), "file-1")
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	l.FileCreated(httptest.NewRequest("POST", "/", nil), "file-1")
	l.SettingsChanged(nil, false)
	if err := l.Close(); err != nil {
		t.Errorf("Close() on nil = %v, want nil", err)
	}
}
