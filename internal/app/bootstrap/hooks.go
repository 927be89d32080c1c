// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle. app.Run calls them in
// order: config, DB connections, schema, startup, handler, shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "stratapapers",
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // URIs, storage, production keys
	ConnectDB:      ConnectDB,      // MongoDB, storage, mailer, Redis
	EnsureSchema:   EnsureSchema,   // validators, indexes, demo seed
	Startup:        Startup,        // templates, timeouts, services, background jobs
	BuildHandler:   BuildHandler,   // router + middleware stack
	Shutdown:       Shutdown,       // drain notifications, stop jobs, disconnect
}
