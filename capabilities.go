package nasc

import "github.com/toutaio/nasc/tick"

// Starter is implemented by services that need to run setup logic once
// they and their dependencies exist. Container.launch calls Start on every
// eagerly-instantiated singleton; Scope.startAll calls it once, when
// CreateScope has resolved the root, on every instance then in the scope's
// cache and externals. Instances resolved into a scope later, and instances
// in child scopes, are not started.
type Starter interface {
	Start() error
}

// Destroyer is implemented by services that hold resources needing
// cleanup. Scope.destroy calls Destroy on every tracked instance; errors
// are logged but never abort the destroy sequence.
type Destroyer interface {
	Destroy() error
}

// Warmer marks a service that must be singleton-lifetime. Resolving a
// Warmer-capable instance under any other lifetime is a LifetimeViolation.
type Warmer interface {
	Warmup()
}

// Tickable, FixedTickable, and RenderTickable alias the tick package's
// capability interfaces so callers can implement them without importing
// tick directly.
type (
	Tickable       = tick.Tickable
	FixedTickable  = tick.FixedTickable
	RenderTickable = tick.RenderTickable
)
