package nasc

// Module accumulates registration records from the builder DSL (Single,
// Scoped, Factory, Multi, Keyed) for a single Container.use call. It is a
// thin accumulator by design — spec.md §1 treats the builder DSL as an
// external collaborator that feeds structured input into the core; all
// real validation happens in Container.use/validate.
type Module struct {
	singles []singleEntry
	multi   []multiEntry
	keyed   []keyedEntry
}

type singleEntry struct {
	key            Key
	implementation *Constructor
	lifetime       Lifetime
}

type multiEntry struct {
	token           *Token
	implementations []*Constructor
}

type keyedEntry struct {
	token   *Token
	order   []string
	entries map[string]*Constructor
}

// RegisterModule creates an empty Module ready for accumulation.
func RegisterModule() *Module {
	return &Module{}
}

// Binding is returned by Single/Scoped/Factory so the caller can optionally
// bind the same implementation under an additional key (an interface
// token), per spec.md §4.3.
type Binding struct {
	m    *Module
	impl *Constructor
	life Lifetime
}

// As additionally registers impl under key with the same lifetime. Each
// call — including one that repeats a key already appended, such as a
// duplicate As of the same token — appends its own record so
// Container.Use feeds every one of them through Store.Register in
// declared order and true duplicates are caught rather than silently
// collapsed.
func (b *Binding) As(key Key) *Binding {
	b.m.singles = append(b.m.singles, singleEntry{key: key, implementation: b.impl, lifetime: b.life})
	return b
}

func (m *Module) bind(impl *Constructor, lifetime Lifetime) *Binding {
	m.singles = append(m.singles, singleEntry{key: impl, implementation: impl, lifetime: lifetime})
	return &Binding{m: m, impl: impl, life: lifetime}
}

// Single registers impl as a singleton under its own identity, returning a
// Binding continuation to additionally bind it under an interface token.
func (m *Module) Single(impl *Constructor) *Binding { return m.bind(impl, LifetimeSingleton) }

// Scoped registers impl as scoped.
func (m *Module) Scoped(impl *Constructor) *Binding { return m.bind(impl, LifetimeScoped) }

// Factory registers impl with factory lifetime.
func (m *Module) Factory(impl *Constructor) *Binding { return m.bind(impl, LifetimeFactory) }

// Multi appends a multi-registration: resolving token returns every
// implementation's instance, in the order given here.
func (m *Module) Multi(token *Token, implementations ...*Constructor) *Module {
	m.multi = append(m.multi, multiEntry{token: token, implementations: implementations})
	return m
}

// Keyed registers a keyed-registration: resolving token returns a callable
// that builds on demand by string key. entries is merged in the order of
// the order slice, which also sets the order of the available keys listed
// for an unknown key; entries whose key is not in order are not registered.
func (m *Module) Keyed(token *Token, order []string, entries map[string]*Constructor) *Module {
	m.keyed = append(m.keyed, keyedEntry{token: token, order: append([]string(nil), order...), entries: entries})
	return m
}

// ScopeModule accumulates a root constructor and externally-provided
// values for a single Container.createScope call. Externals are captured
// one at a time with WithExternal; a ScopeModule is not callable with
// runtime parameters.
type ScopeModule struct {
	root      *Constructor
	externals map[Key]any
}

// RegisterScopeModule creates an empty ScopeModule.
func RegisterScopeModule() *ScopeModule {
	return &ScopeModule{externals: make(map[Key]any)}
}

// WithRoot sets the constructor resolved (with scoped lifetime) immediately
// after the scope is created.
func (sm *ScopeModule) WithRoot(root *Constructor) *ScopeModule {
	sm.root = root
	return sm
}

// WithExternal captures value to be provided under key once the scope
// exists.
func (sm *ScopeModule) WithExternal(key Key, value any) *ScopeModule {
	sm.externals[key] = value
	return sm
}
