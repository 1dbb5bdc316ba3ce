// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratanote/internal/app/store/collection"
	"github.com/dalemusser/stratanote/internal/app/store/kvstore"
	"github.com/dalemusser/stratanote/internal/app/system/auditlog"
	"github.com/dalemusser/stratanote/internal/app/system/notifier"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It serves as
// the central place to store all backend connections and the services
// built on top of them.
//
// The Shutdown hook is responsible for closing these gracefully when the
// application terminates.
type DBDeps struct {
	// KV is the persistence provider (mongo or sqlite) behind the note
	// collection.
	KV kvstore.Provider

	// Notes is the authoritative in-memory collection, hydrated from KV
	// in Startup.
	Notes *collection.Store

	// Audit records note lifecycle events to a rotating file.
	Audit *auditlog.Logger

	// Notifier announces opened files to an external webhook.
	Notifier *notifier.Notifier
}
