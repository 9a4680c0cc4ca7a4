// Package registry provides storage and retrieval of dependency
// registrations. It holds only data — the container above it owns every
// rule about lifetimes, cycles, and scopes. The store is single-writer,
// matching the rest of the core (spec.md §5): no locking.
package registry

// Key is either of the two identity kinds a container resolves (a token or
// a constructor handle). Left untyped here, rather than importing the
// parent package's concrete types, to avoid an import cycle — the parent
// package imports registry, not the other way around.
type Key = any

// Registration is a single/scoped/factory binding: exactly one
// implementation behind one key.
type Registration struct {
	Key            Key
	Implementation Key // the *Constructor building this key's instance
	Lifetime       string
}

// MultiRegistration is an ordered list of implementations bound to one
// token; resolving the token returns every implementation's instance, in
// registration order.
type MultiRegistration struct {
	Token           Key
	Implementations []Key
}

// KeyedRegistration maps string keys to implementations under one token;
// resolving the token returns a callable that builds on demand by string
// key.
type KeyedRegistration struct {
	Token   Key
	Entries map[string]Key
	Order   []string // insertion order, for "available keys" error messages
}

// Store holds every registration a Container has ingested.
type Store struct {
	registrations map[Key]*Registration
	order         []Key // insertion order, for launch()'s Start pass
	multi         map[Key]*MultiRegistration
	keyed         map[Key]*KeyedRegistration
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		registrations: make(map[Key]*Registration),
		multi:         make(map[Key]*MultiRegistration),
		keyed:         make(map[Key]*KeyedRegistration),
	}
}

// Register inserts reg, reporting false if a registration already exists
// for reg.Key (the caller — Container.use — turns that into a
// DuplicateRegistration error).
func (s *Store) Register(reg *Registration) bool {
	if _, exists := s.registrations[reg.Key]; exists {
		return false
	}
	s.registrations[reg.Key] = reg
	s.order = append(s.order, reg.Key)
	return true
}

// Order returns every registered key in registration order, the order
// launch() instantiates singletons and calls Start in.
func (s *Store) Order() []Key {
	return s.order
}

// Get retrieves the Registration for key, if any.
func (s *Store) Get(key Key) (*Registration, bool) {
	r, ok := s.registrations[key]
	return r, ok
}

// AppendMulti appends impl to token's multi-registration, preserving
// insertion order across possibly-many module merges.
func (s *Store) AppendMulti(token Key, impl Key) {
	mr, ok := s.multi[token]
	if !ok {
		mr = &MultiRegistration{Token: token}
		s.multi[token] = mr
	}
	mr.Implementations = append(mr.Implementations, impl)
}

// GetMulti retrieves the multi-registration for token, if any.
func (s *Store) GetMulti(token Key) (*MultiRegistration, bool) {
	mr, ok := s.multi[token]
	return mr, ok
}

// MergeKeyed merges entries into token's keyed-registration. Within one
// call, later string keys overwrite earlier ones occupying the same string
// key — and across separate calls (separate modules), the same last-write-
// wins rule applies; collisions across modules are not diagnosed, per
// spec.md §9.
func (s *Store) MergeKeyed(token Key, order []string, entries map[string]Key) {
	kr, ok := s.keyed[token]
	if !ok {
		kr = &KeyedRegistration{Token: token, Entries: make(map[string]Key)}
		s.keyed[token] = kr
	}
	for _, k := range order {
		if _, exists := kr.Entries[k]; !exists {
			kr.Order = append(kr.Order, k)
		}
		kr.Entries[k] = entries[k]
	}
}

// GetKeyed retrieves the keyed-registration for token, if any.
func (s *Store) GetKeyed(token Key) (*KeyedRegistration, bool) {
	kr, ok := s.keyed[token]
	return kr, ok
}

// All returns every single/scoped/factory registration keyed by Key; pair
// with Order for a stable iteration order.
func (s *Store) All() map[Key]*Registration {
	return s.registrations
}
