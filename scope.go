package nasc

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errScopeDestroyed is returned by CreateChildScope, ProvideExternal,
// Resolve and ResolveWithArgs once destroyed is true.
var errScopeDestroyed = errors.New("nasc: operation attempted on a destroyed scope")

// Scope is one node in the scope tree: a per-entity instance cache with
// its own externals, tracked destroyables and tickables, and independent
// destruction. Once destroyed, creating children, providing externals and
// resolving fail; Destroy is a no-op, and ScopeID, Debug and Services still
// answer, reporting an emptied scope.
type Scope struct {
	id        string
	container *Container
	parent    *Scope
	createdAt time.Time

	childScopes []*Scope
	scopedCache map[Key]any
	externals   map[Key]any

	destroyables []Destroyer
	logicTicks   []Tickable
	fixedTicks   []FixedTickable
	renderTicks  []RenderTickable

	destroyed bool
}

func newScope(c *Container, parent *Scope, id ...string) *Scope {
	scopeID := uuid.NewString()
	if len(id) > 0 && id[0] != "" {
		scopeID = id[0]
	}
	return &Scope{
		id:          scopeID,
		container:   c,
		parent:      parent,
		createdAt:   time.Now(),
		scopedCache: make(map[Key]any),
		externals:   make(map[Key]any),
	}
}

// ScopeID returns this scope's identity: the caller-supplied id, or a
// generated uuid.
func (s *Scope) ScopeID() string { return s.id }

// CreateChildScope allocates a child node and appends it to childScopes.
// A caller-supplied id overrides the generated uuid; passing more than one
// id is a programmer error and only the first is honored.
func (s *Scope) CreateChildScope(id ...string) (*Scope, error) {
	if s.destroyed {
		return nil, errScopeDestroyed
	}
	child := newScope(s.container, s, id...)
	s.childScopes = append(s.childScopes, child)
	return child, nil
}

// ProvideExternal inserts value into externals under key and tracks it for
// lifecycle exactly as if it had been resolved into this scope.
func (s *Scope) ProvideExternal(key Key, value any) error {
	if s.destroyed {
		return errScopeDestroyed
	}
	s.externals[key] = value
	s.trackLifecycle(value)
	return nil
}

// provideExternal is the unchecked internal counterpart used while a scope
// is still being assembled by createScope, before it is handed to the
// caller.
func (s *Scope) provideExternal(key Key, value any) {
	s.externals[key] = value
	s.trackLifecycle(value)
}

// Resolve resolves key with this scope as the resolution context.
func (s *Scope) Resolve(key Key) (any, error) {
	if s.destroyed {
		return nil, errScopeDestroyed
	}
	return s.resolve(key)
}

// ResolveWithArgs resolves key with this scope as the resolution context,
// supplying args as the constructor's runtime-marked parameters.
func (s *Scope) ResolveWithArgs(key Key, args ...any) (any, error) {
	if s.destroyed {
		return nil, errScopeDestroyed
	}
	if err := s.container.validate(); err != nil {
		return nil, err
	}
	return s.container.resolve(key, s, nil, args)
}

func (s *Scope) resolve(key Key) (any, error) {
	if err := s.container.validate(); err != nil {
		return nil, err
	}
	return s.container.resolve(key, s, nil, nil)
}

func (s *Scope) lookupExternal(key Key) (any, bool) {
	v, ok := s.externals[key]
	return v, ok
}

func (s *Scope) lookupCached(key Key) (any, bool) {
	v, ok := s.scopedCache[key]
	return v, ok
}

// track caches inst under key in scopedCache and runs lifecycle tracking,
// called once per scoped resolution.
func (s *Scope) track(key Key, inst any) {
	s.scopedCache[key] = inst
	s.trackLifecycle(inst)
}

// trackLifecycle inspects inst for the tick capabilities and Destroy,
// pushing it into the corresponding lists and registering ticking
// instances with the dispatcher immediately. Start is never called here —
// see startAll.
func (s *Scope) trackLifecycle(inst any) {
	if t, ok := inst.(Tickable); ok {
		s.logicTicks = append(s.logicTicks, t)
		s.container.TickDispatcher().RegisterTickable(t)
	}
	if t, ok := inst.(FixedTickable); ok {
		s.fixedTicks = append(s.fixedTicks, t)
		s.container.TickDispatcher().RegisterFixedTickable(t)
	}
	if t, ok := inst.(RenderTickable); ok {
		s.renderTicks = append(s.renderTicks, t)
		s.container.TickDispatcher().RegisterRenderTickable(t)
	}
	if d, ok := inst.(Destroyer); ok {
		s.destroyables = append(s.destroyables, d)
	}
}

// startAll calls Start on every instance in scopedCache and externals that
// exposes it; failures are logged and do not abort the loop, unlike
// Container.launch's Start pass.
func (s *Scope) startAll() {
	logger := s.container.logger
	visit := func(inst any) {
		starter, ok := inst.(Starter)
		if !ok {
			return
		}
		if err := starter.Start(); err != nil {
			logger.Error("scope Start failed", zap.String("scope", s.id), zap.Error(err))
		}
	}
	for _, inst := range s.scopedCache {
		visit(inst)
	}
	for _, inst := range s.externals {
		visit(inst)
	}
}

// Destroy is idempotent: unregisters every tracked tickable, destroys
// every child scope recursively, invokes Destroy on every tracked
// destroyable (errors logged, non-fatal), clears every cache and tracking
// list, then marks the scope destroyed.
func (s *Scope) Destroy() error {
	if s.destroyed {
		return nil
	}

	dispatcher := s.container.TickDispatcher()
	for _, t := range s.logicTicks {
		dispatcher.UnregisterTickable(t)
	}
	for _, t := range s.fixedTicks {
		dispatcher.UnregisterFixedTickable(t)
	}
	for _, t := range s.renderTicks {
		dispatcher.UnregisterRenderTickable(t)
	}

	for _, child := range s.childScopes {
		if err := child.Destroy(); err != nil {
			s.container.logger.Error("child scope destroy failed", zap.String("scope", child.id), zap.Error(err))
		}
	}
	s.childScopes = nil

	// Reverse-creation order: a dependent's Destroy may still touch a
	// dependency it was constructed with, so it must run first.
	for i := len(s.destroyables) - 1; i >= 0; i-- {
		if err := s.destroyables[i].Destroy(); err != nil {
			s.container.logger.Error("Destroy failed", zap.String("scope", s.id), zap.Error(err))
		}
	}

	s.scopedCache = make(map[Key]any)
	s.externals = make(map[Key]any)
	s.destroyables = nil
	s.logicTicks = nil
	s.fixedTicks = nil
	s.renderTicks = nil
	s.destroyed = true
	return nil
}

// ScopeDebug is the snapshot Debug returns.
type ScopeDebug struct {
	ScopeID        string
	CreatedAt      time.Time
	ParentScopeID  string
	Services       []string
	ChildScopes    int
	TotalServices  int
}

// Debug snapshots this scope's identity, ancestry, and contents.
func (s *Scope) Debug() ScopeDebug {
	var parentID string
	if s.parent != nil {
		parentID = s.parent.id
	}
	services := s.Services()
	return ScopeDebug{
		ScopeID:       s.id,
		CreatedAt:     s.createdAt,
		ParentScopeID: parentID,
		Services:      services,
		ChildScopes:   len(s.childScopes),
		TotalServices: len(services),
	}
}

// Services returns the sorted set of string descriptions of every key
// resolved into this scope's cache or externals — tokens render their
// description, constructors their target type name.
func (s *Scope) Services() []string {
	seen := make(map[string]struct{}, len(s.scopedCache)+len(s.externals))
	for key := range s.scopedCache {
		seen[describeKey(key)] = struct{}{}
	}
	for key := range s.externals {
		seen[describeKey(key)] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
