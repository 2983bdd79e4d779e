// Package lifecycle holds timeouts shared by startup and shutdown hooks.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds a single start or stop hook.
	DefaultTimeout = 10 * time.Second

	// ShutdownGrace is how long in-flight requests may drain before the server is closed.
	ShutdownGrace = 15 * time.Second
)
