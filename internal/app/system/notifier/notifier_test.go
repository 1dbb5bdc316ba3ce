package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFileOpened_DeliversMessage(t *testing.T) {
	received := make(chan Message, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var msg Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		received <- msg
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := New(srv.URL, zap.NewNop())
	n.FileOpened("file-123")

	select {
	case msg := <-received:
		if msg.Action != ActionOpenFile {
			t.Errorf("action = %q, want %q", msg.Action, ActionOpenFile)
		}
		if msg.FileID != "file-123" {
			t.Errorf("fileId = %q, want %q", msg.FileID, "file-123")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was never called")
	}
}

func TestFileOpened_NoURLIsNoop(t *testing.T) {
	n := New("", zap.NewNop())
	n.FileOpened("file-123") // must not panic or block

	var nilNotifier *Notifier
	nilNotifier.FileOpened("file-123")
}

func TestFileOpened_ServerErrorIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := New(srv.URL, zap.NewNop())
	n.FileOpened("file-123")

	// Give the goroutine a moment; the only assertion is that nothing
	// panics and the caller is never blocked.
	time.Sleep(50 * time.Millisecond)
}
