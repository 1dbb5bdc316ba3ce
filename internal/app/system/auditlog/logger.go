// internal/app/system/auditlog/logger.go
package auditlog

// The audit log is a rotating JSON file recording note lifecycle events
// (create, open, archive, delete, settings changes) with the client that
// requested them. It answers "what happened to my notes" after the fact,
// which the in-memory state cannot.

import (
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Event types recorded in the audit log.
const (
	EventFileCreated     = "file_created"
	EventFileOpened      = "file_opened"
	EventFileArchived    = "file_archived"
	EventFileUnarchived  = "file_unarchived"
	EventFileDeleted     = "file_deleted"
	EventSettingsChanged = "settings_changed"
)

// Config holds audit logging configuration.
type Config struct {
	// File is the audit log path. Empty disables the file sink; events
	// then go only to the application log.
	File string
	// Rotation settings, passed through to lumberjack.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger records audit events. It writes to the rotating audit file when
// one is configured, and always mirrors events to the application log.
// A nil Logger is a no-op, so tests can pass nil.
type Logger struct {
	file   *zap.Logger
	app    *zap.Logger
	sink   *lumberjack.Logger
	config Config
}

// New creates an audit Logger. appLog receives a mirror of every event.
func New(cfg Config, appLog *zap.Logger) *Logger {
	l := &Logger{app: appLog, config: cfg}

	if cfg.File != "" {
		l.sink = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(l.sink),
			zapcore.InfoLevel,
		)
		l.file = zap.New(core)
	}
	return l
}

// Close flushes and closes the audit file sink.
func (l *Logger) Close() error {
	if l == nil || l.sink == nil {
		return nil
	}
	_ = l.file.Sync()
	return l.sink.Close()
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to RemoteAddr
	return r.RemoteAddr
}

// log writes one event to the configured sinks.
func (l *Logger) log(eventType string, r *http.Request, fields ...zap.Field) {
	if l == nil {
		return
	}

	all := make([]zap.Field, 0, len(fields)+3)
	all = append(all,
		zap.Bool("audit", true),
		zap.String("event_type", eventType),
	)
	if r != nil {
		all = append(all, zap.String("ip", getClientIP(r)))
	}
	all = append(all, fields...)

	if l.file != nil {
		l.file.Info("audit event", all...)
	}
	if l.app != nil {
		l.app.Info("audit event", all...)
	}
}

// FileCreated records that a new blank file was added to the collection.
func (l *Logger) FileCreated(r *http.Request, fileID string) {
	l.log(EventFileCreated, r, zap.String("file_id", fileID))
}

// FileOpened records that a file became the open file. revived marks opens
// that pulled the file out of the archive.
func (l *Logger) FileOpened(r *http.Request, fileID string, revived bool) {
	l.log(EventFileOpened, r,
		zap.String("file_id", fileID),
		zap.Bool("revived", revived),
	)
}

// FileArchived records an archive toggle. archived is the resulting state.
func (l *Logger) FileArchived(r *http.Request, fileID string, archived bool) {
	event := EventFileArchived
	if !archived {
		event = EventFileUnarchived
	}
	l.log(event, r, zap.String("file_id", fileID))
}

// FileDeleted records a permanent removal from the collection.
func (l *Logger) FileDeleted(r *http.Request, fileID string) {
	l.log(EventFileDeleted, r, zap.String("file_id", fileID))
}

// SettingsChanged records a change to the archived-visibility flag.
func (l *Logger) SettingsChanged(r *http.Request, showArchived bool) {
	l.log(EventSettingsChanged, r, zap.Bool("show_archived", showArchived))
}
