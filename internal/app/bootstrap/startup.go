// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratanote/internal/app/resources"
	"github.com/dalemusser/stratanote/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served.
//
// The note collection is hydrated here: persisted files and the
// archived-visibility flag are loaded and the initial current file chosen.
// Hydration must finish before the first request, otherwise an early edit
// would race the state replacement and be lost.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	deps.Notes.Hydrate(ctx)

	startTaskRunner(appCfg, deps, logger)

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	if appCfg.BackupInterval > 0 {
		taskRunner.Register(tasks.BackupJob(deps.KV, appCfg.BackupDir, appCfg.BackupInterval, logger))
	}
	taskRunner.Register(tasks.StoreHealthJob(deps.KV, logger))

	taskRunner.Start()
}
