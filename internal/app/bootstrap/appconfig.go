// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to stratanote lives: which
// persistence provider backs the note collection, how aggressively saves
// are debounced, where backups and the audit log go.
type AppConfig struct {
	// Persistence provider selection: "sqlite" (default, single file on
	// disk) or "mongo" (shared server).
	StoreType string

	// MongoDB provider configuration (only used when StoreType is "mongo")
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// SQLite provider configuration (only used when StoreType is "sqlite")
	SQLitePath string // Database file path (default: ./stratanote.db)

	// SaveDebounce is the quiet period between the last edit and the
	// write to the provider. Zero writes synchronously.
	SaveDebounce time.Duration

	// OpenWebhookURL receives an openFile message whenever a note is
	// opened. Empty disables the webhook.
	OpenWebhookURL string

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Audit logging configuration
	AuditLogFile       string // Audit log path (empty disables the file sink)
	AuditLogMaxSizeMB  int    // Rotate after the file reaches this size
	AuditLogMaxBackups int    // Rotated files to keep
	AuditLogMaxAgeDays int    // Days to keep rotated files
	AuditLogCompress   bool   // Gzip rotated files

	// Backup configuration
	BackupInterval time.Duration // How often to snapshot the collection (0 disables)
	BackupDir      string        // Directory for snapshot files
}
