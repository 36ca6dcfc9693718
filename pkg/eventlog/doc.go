// Package eventlog records the session event trace of the work timer.
//
// The trace is separate from operational logging (slog). It captures a
// machine-readable sequence of lifecycle changes, timer transitions,
// containment changes, notices and errors so a session can be replayed and
// analyzed with the geoclock-log tool.
//
// Coordinates are never recorded: containment events carry only the
// Inside/Outside state, not where the device was.
//
// # Basic Usage
//
//	// Console during development
//	cfg.EventLog = eventlog.NewSlogAdapter(slog.Default())
//
//	// Binary file
//	cfg.EventLog, _ = eventlog.NewFileLogger("/var/log/geoclock/session.gclog")
//
//	// Both
//	cfg.EventLog = eventlog.NewMultiLogger(console, file)
//
// # File Format
//
// Files are a stream of CBOR-encoded Events with integer keys, conventionally
// using the .gclog extension.
package eventlog
