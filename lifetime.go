package nasc

// Lifetime is the lifecycle strategy a Registration is bound with.
type Lifetime string

const (
	// LifetimeSingleton caches one instance for the life of the Container.
	LifetimeSingleton Lifetime = "singleton"

	// LifetimeScoped caches one instance per Scope.
	LifetimeScoped Lifetime = "scoped"

	// LifetimeFactory constructs a fresh instance on every resolve. Not
	// cached, not tracked for destruction or ticking.
	LifetimeFactory Lifetime = "factory"
)

// String returns the lifetime's literal name.
func (l Lifetime) String() string { return string(l) }
