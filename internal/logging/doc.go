// Package logging provides structured logging with per-module log levels.
//
// Records go to stdout (text or json), to the systemd journal when journald
// is reachable, and to an in-memory history buffer that backs the
// /api/logs/stream endpoint.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"strobe": "debug",
//			"http":   "warn",
//		},
//	})
//
// Then ask for a module logger:
//
//	logger := logging.GetLogger("torch")
//	logger.Info("Torch turned on", "device", name)
//
// Loggers obtained before Initialize are updated in place, so package-level
// loggers are safe. Levels can be changed later with SetModuleLevel.
//
// Journal entries are tagged with the identifier "torchnode":
//
//	journalctl -t torchnode -f
//	journalctl -t torchnode MODULE=strobe
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	strobe = "debug"
package logging
