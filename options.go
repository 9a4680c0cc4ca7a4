package nasc

import (
	"go.uber.org/zap"

	"github.com/toutaio/nasc/host"
)

// Option configures a Container at construction time. This is the only
// configuration surface the library has — no CLI, no environment
// variables, no persisted state (spec.md §6).
type Option func(*Container) error

// WithLogger sets the *zap.Logger used for every non-fatal diagnostic
// path: Destroy errors, tick-callback panics, scope Start failures. A
// container built without this option uses a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithMetadata replaces the default process-wide metadata store with an
// isolated one — mainly for tests that need a clean slate between runs,
// per spec.md §9's "encapsulate globals behind a handle" note.
func WithMetadata(m *Metadata) Option {
	return func(c *Container) error {
		if m != nil {
			c.metadata = m
		}
		return nil
	}
}

// WithHost wires the container's tick dispatcher to a host runtime's
// frame clock. Without this option the dispatcher is built against a host
// that never fires a callback.
func WithHost(h host.Host) Option {
	return func(c *Container) error {
		c.host = h
		return nil
	}
}
