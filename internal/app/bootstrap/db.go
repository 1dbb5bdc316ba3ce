// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/stratanote/internal/app/store/collection"
	"github.com/dalemusser/stratanote/internal/app/store/kvstore"
	"github.com/dalemusser/stratanote/internal/app/system/auditlog"
	"github.com/dalemusser/stratanote/internal/app/system/notifier"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// ConnectDB connects to the configured persistence provider and builds the
// services that depend on it.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema
// and Startup. The note collection is created here but not hydrated until
// Startup, after the schema is in place.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var kv kvstore.Provider

	switch appCfg.StoreType {
	case "mongo":
		poolCfg := wafflemongo.DefaultPoolConfig()
		if appCfg.MongoMaxPoolSize > 0 {
			poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
		}
		if appCfg.MongoMinPoolSize > 0 {
			poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
		}

		client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
		if err != nil {
			return DBDeps{}, err
		}
		kv = kvstore.NewMongoStore(client, client.Database(appCfg.MongoDatabase))

		logger.Info("connected to MongoDB state store",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
			zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
		)

	case "sqlite", "":
		store, err := kvstore.NewSQLiteStore(appCfg.SQLitePath)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to open sqlite state store: %w", err)
		}
		kv = store

		logger.Info("opened SQLite state store",
			zap.String("path", appCfg.SQLitePath))

	default:
		return DBDeps{}, fmt.Errorf("unknown store type: %s", appCfg.StoreType)
	}

	audit := auditlog.New(auditlog.Config{
		File:       appCfg.AuditLogFile,
		MaxSizeMB:  appCfg.AuditLogMaxSizeMB,
		MaxBackups: appCfg.AuditLogMaxBackups,
		MaxAgeDays: appCfg.AuditLogMaxAgeDays,
		Compress:   appCfg.AuditLogCompress,
	}, logger)
	if appCfg.AuditLogFile != "" {
		logger.Info("audit log enabled", zap.String("file", appCfg.AuditLogFile))
	}

	notify := notifier.New(appCfg.OpenWebhookURL, logger)
	if appCfg.OpenWebhookURL != "" {
		logger.Info("open-file webhook enabled", zap.String("url", appCfg.OpenWebhookURL))
	}

	return DBDeps{
		KV:       kv,
		Notes:    collection.New(kv, appCfg.SaveDebounce, logger),
		Audit:    audit,
		Notifier: notify,
	}, nil
}

// EnsureSchema sets up schema as needed.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. For the sqlite provider this creates the kv_entries
// table; the mongo provider needs no preparation.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.KV.Migrate(ctx); err != nil {
		logger.Error("failed to migrate state store", zap.Error(err))
		return err
	}
	logger.Info("state store schema ensured")
	return nil
}
