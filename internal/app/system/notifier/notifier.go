// Package notifier announces note events to an external webhook.
//
// StrataNote runs alongside other tools on the same machine; a companion
// process can subscribe to "a note was opened" by exposing an HTTP endpoint
// and pointing STRATANOTE_OPEN_WEBHOOK_URL at it. Delivery is fire and
// forget: a dead subscriber never slows down or fails a request.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 5 * time.Second

// ActionOpenFile is the message action sent when a file is opened.
const ActionOpenFile = "openFile"

// Message is the webhook payload.
type Message struct {
	Action string `json:"action"`
	FileID string `json:"fileId"`
}

// Notifier posts messages to a configured webhook URL. A Notifier with an
// empty URL (or a nil Notifier) discards every message, so callers never
// need to check whether the webhook is configured.
type Notifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// New creates a Notifier for the given webhook URL. An empty URL disables
// delivery.
func New(url string, logger *zap.Logger) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		logger: logger,
	}
}

// FileOpened announces that the identified file became the open file. The
// post happens on a background goroutine; failures are logged and dropped.
func (n *Notifier) FileOpened(fileID string) {
	if n == nil || n.url == "" {
		return
	}
	go func() {
		if err := n.post(Message{Action: ActionOpenFile, FileID: fileID}); err != nil {
			n.logger.Warn("webhook delivery failed",
				zap.String("action", ActionOpenFile),
				zap.String("file_id", fileID),
				zap.Error(err),
			)
		}
	}()
}

func (n *Notifier) post(msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
