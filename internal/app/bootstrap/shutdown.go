// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown is invoked during WAFFLE's shutdown phase, after the HTTP server
// has stopped accepting new requests and in-flight requests have drained.
//
// Order matters here: the debounced save is flushed while the provider is
// still open, then background jobs stop, then the provider and audit log
// close. The context carries the shutdown timeout; cleanup that outlives it
// is abandoned.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var firstErr error

	// Flush any pending debounced write so the last edits survive.
	if deps.Notes != nil {
		logger.Info("flushing pending note writes")
		deps.Notes.Flush()
	}

	if taskRunner != nil {
		logger.Info("stopping background task runner")
		if err := taskRunner.Stop(ctx); err != nil {
			logger.Warn("background task runner did not stop cleanly", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if deps.KV != nil {
		logger.Info("closing state store")
		if err := deps.KV.Close(ctx); err != nil {
			logger.Error("state store close failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if deps.Audit != nil {
		if err := deps.Audit.Close(); err != nil {
			logger.Warn("audit log close failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
