// internal/app/bootstrap/hooks.go
package bootstrap

import "github.com/dalemusser/waffle/app"

// Hooks wires the application's lifecycle into WAFFLE's app runner.
// Each function is called in order by app.Run: LoadConfig, ValidateConfig,
// ConnectDB, EnsureSchema, Startup, BuildHandler, and finally Shutdown when
// the process receives a termination signal.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "stratanote",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	EnsureSchema:   EnsureSchema,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}
