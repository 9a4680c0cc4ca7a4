package nasc

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/toutaio/nasc/host"
	"github.com/toutaio/nasc/registry"
	"github.com/toutaio/nasc/tick"
)

var starterType = reflect.TypeOf((*Starter)(nil)).Elem()

// Container is the root of the resolution graph: every registration, the
// singleton cache, and this container's tick dispatcher live here. A
// Container is single-writer — see the package doc for why no mutex
// guards any of this.
type Container struct {
	store      *registry.Store
	singletons map[Key]any
	metadata   *Metadata
	logger     *zap.Logger
	host       host.Host
	dispatcher *tick.Dispatcher
	validated  bool
}

// New creates a Container configured by opts. Without WithHost, the tick
// dispatcher has no host to subscribe to — tickDispatcher() still works,
// but no callback ever fires until the caller supplies one.
func New(opts ...Option) (*Container, error) {
	c := &Container{
		store:      registry.New(),
		singletons: make(map[Key]any),
		metadata:   DefaultMetadata,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	h := c.host
	if h == nil {
		h = nopHost{}
	}
	c.dispatcher = tick.New(h, c.logger)
	return c, nil
}

// Use merges module's accumulated registration records into the
// container. Duplicate single/scoped/factory keys fail with
// DuplicateRegistrationError — registrations already merged before the
// failing one are not rolled back, matching the teacher's per-call
// registration semantics. Sets validated=false.
func (c *Container) Use(m *Module) error {
	c.validated = false
	for _, se := range m.singles {
		reg := &registry.Registration{Key: se.key, Implementation: se.implementation, Lifetime: se.lifetime.String()}
		if !c.store.Register(reg) {
			return &DuplicateRegistrationError{Key: se.key}
		}
		c.metadata.SetLifetime(se.implementation, se.lifetime)
	}
	for _, me := range m.multi {
		for _, impl := range me.implementations {
			c.store.AppendMulti(me.token, impl)
		}
	}
	for _, ke := range m.keyed {
		entries := make(map[string]registry.Key, len(ke.entries))
		for k, v := range ke.entries {
			entries[k] = v
		}
		c.store.MergeKeyed(ke.token, ke.order, entries)
	}
	return nil
}

// Launch validates the container, then resolves every singleton whose
// implementation exposes Start, in registration order, and invokes Start
// on each. Services without Start are never pre-instantiated. A Start
// failure aborts launch (it is not one of the non-fatal paths spec.md §7
// reserves for Destroy and tick callbacks).
func (c *Container) Launch() error {
	if err := c.validate(); err != nil {
		return err
	}
	for _, key := range c.store.Order() {
		reg, _ := c.store.Get(key)
		if reg.Lifetime != LifetimeSingleton.String() {
			continue
		}
		ctor, ok := reg.Implementation.(*Constructor)
		if !ok || !ctor.Implements(starterType) {
			continue
		}
		inst, err := c.resolve(key, nil, nil, nil)
		if err != nil {
			return err
		}
		if starter, ok := inst.(Starter); ok {
			if err := starter.Start(); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateScope allocates a root-level scope, copies sm's externals into it,
// resolves its root constructor (scoped lifetime) if one was declared, and
// runs startAll.
func (c *Container) CreateScope(sm *ScopeModule) (*Scope, error) {
	s := newScope(c, nil)
	for key, value := range sm.externals {
		s.provideExternal(key, value)
	}
	if sm.root != nil {
		if _, err := s.resolve(sm.root); err != nil {
			return nil, err
		}
	}
	s.startAll()
	return s, nil
}

// TickDispatcher returns the shared tick dispatcher.
func (c *Container) TickDispatcher() *tick.Dispatcher { return c.dispatcher }

// Resolve resolves key at the root (no scope, no runtime arguments),
// validating the container first if this is the first resolve.
func (c *Container) Resolve(key Key) (any, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c.resolve(key, nil, nil, nil)
}

// ResolveWithArgs resolves key at the root, supplying args as the
// constructor's runtime-marked parameters in ascending index order.
func (c *Container) ResolveWithArgs(key Key, args ...any) (any, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c.resolve(key, nil, nil, args)
}

func (c *Container) hasRegistrationFor(key Key) bool {
	if _, ok := c.store.Get(key); ok {
		return true
	}
	if _, ok := c.store.GetMulti(key); ok {
		return true
	}
	if _, ok := c.store.GetKeyed(key); ok {
		return true
	}
	return false
}

// nopHost is the default Host used when New is called without WithHost —
// its subscription methods are never called unless something registers a
// tickable, and even then there is simply nothing to dispatch.
type nopHost struct{}

func (nopHost) SupportsRender() bool { return false }
func (nopHost) OnLogicTick(func(float64)) host.UnsubscribeFunc  { return func() {} }
func (nopHost) OnRenderTick(func(float64)) host.UnsubscribeFunc { return func() {} }
