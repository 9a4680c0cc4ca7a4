// Package nasc provides a dependency-injection core for long-lived,
// single-threaded interactive applications: a runtime that accepts
// declarative constructor registrations, resolves a potentially cyclic
// dependency graph while detecting cycles, enforces lifetime rules
// (singleton, scoped, factory), and manages a tree of per-entity scopes
// whose destruction order and tick registration it tracks automatically.
//
// Nasc (Old Irish: "link" or "bond") is built for a host whose frame loop
// delivers two periodic signals — a logic/physics tick and a pre-render
// tick — and whose object graphs come and go with external entities
// joining and leaving. It is not thread-safe by design: the whole core
// assumes a single cooperative scheduler driving it, matching the host it
// targets.
//
// # Quick start
//
//	container, _ := nasc.New()
//
//	loggerToken := nasc.CreateToken("Logger")
//	loggerCtor := nasc.NewConstructor(func() *ConsoleLogger { return &ConsoleLogger{} })
//
//	m := nasc.RegisterModule()
//	m.Single(loggerCtor).As(loggerToken)
//	container.Use(m)
//
//	logger, _ := container.Resolve(loggerToken)
//
// # Lifetimes
//
// Singleton instances are cached for the life of the Container. Scoped
// instances are cached once per Scope. Factory instances are built fresh
// on every resolve and are never cached or tracked.
//
// # Scopes
//
// A Scope is a node in a tree of per-entity instance caches:
//
//	scope, _ := container.CreateScope(nasc.RegisterScopeModule())
//	defer scope.Destroy()
//	instance, _ := scope.Resolve(someToken)
//
// Destroying a scope unregisters its tickables from the tick dispatcher,
// destroys its children first, then calls Destroy on every tracked
// instance.
//
// # Ticking
//
// Instances implementing Tickable, FixedTickable, or RenderTickable are
// registered with the container's tick dispatcher automatically the
// moment they are resolved into a scope. The dispatcher amortises a
// single host subscription across every registered instance regardless
// of count.
package nasc
