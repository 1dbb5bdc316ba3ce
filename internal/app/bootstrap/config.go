// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATANOTE"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: store_type, mongo_uri, etc.
//   - Environment variables: STRATANOTE_STORE_TYPE, STRATANOTE_MONGO_URI, etc.
//   - Command-line flags: --store_type, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_type", Default: "sqlite", Desc: "Persistence provider: 'sqlite' or 'mongo'"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (store_type=mongo)"},
	{Name: "mongo_database", Default: "stratanote", Desc: "MongoDB database name (store_type=mongo)"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "sqlite_path", Default: "./stratanote.db", Desc: "SQLite database file path (store_type=sqlite)"},

	{Name: "save_debounce", Default: "2s", Desc: "Quiet period before edits are written to the store"},

	{Name: "open_webhook_url", Default: "", Desc: "URL that receives openFile messages (empty disables)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Audit logging settings
	{Name: "audit_log_file", Default: "", Desc: "Audit log file path (empty disables the file sink)"},
	{Name: "audit_log_max_size_mb", Default: 10, Desc: "Audit log size before rotation (MB)"},
	{Name: "audit_log_max_backups", Default: 5, Desc: "Rotated audit log files to keep"},
	{Name: "audit_log_max_age_days", Default: 30, Desc: "Days to keep rotated audit logs"},
	{Name: "audit_log_compress", Default: true, Desc: "Gzip rotated audit logs"},

	// Backup settings
	{Name: "backup_interval", Default: "1h", Desc: "Collection snapshot interval (0 disables backups)"},
	{Name: "backup_dir", Default: "./backups", Desc: "Directory for collection snapshots"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATANOTE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreType: appValues.String("store_type"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SQLitePath: appValues.String("sqlite_path"),

		SaveDebounce: appValues.Duration("save_debounce", 2*time.Second),

		OpenWebhookURL: appValues.String("open_webhook_url"),

		CSRFKey: appValues.String("csrf_key"),

		AuditLogFile:       appValues.String("audit_log_file"),
		AuditLogMaxSizeMB:  appValues.Int("audit_log_max_size_mb"),
		AuditLogMaxBackups: appValues.Int("audit_log_max_backups"),
		AuditLogMaxAgeDays: appValues.Int("audit_log_max_age_days"),
		AuditLogCompress:   appValues.Bool("audit_log_compress"),

		BackupInterval: appValues.Duration("backup_interval", time.Hour),
		BackupDir:      appValues.String("backup_dir"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreType {
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	case "sqlite", "":
		if appCfg.SQLitePath == "" {
			return fmt.Errorf("sqlite_path must not be empty when store_type is sqlite")
		}
	default:
		return fmt.Errorf("unknown store_type: %s (want 'sqlite' or 'mongo')", appCfg.StoreType)
	}

	if appCfg.SaveDebounce < 0 {
		return fmt.Errorf("save_debounce must not be negative")
	}
	return nil
}
