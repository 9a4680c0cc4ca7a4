package nasc

import (
	"fmt"
	"reflect"

	"github.com/toutaio/nasc/registry"
)

var warmerType = reflect.TypeOf((*Warmer)(nil)).Elem()

// KeyedFactory is what resolving a keyed-registration's token yields: a
// callable that builds a fresh instance by string key on every call.
type KeyedFactory func(key string) (any, error)

// resolve implements the core algorithm from spec.md §4.4. chain is the
// active resolution stack, used for cycle detection and error rendering;
// args are runtime-supplied constructor arguments, consumed in ascending
// parameter-index order.
func (c *Container) resolve(key Key, scope *Scope, chain []Key, args []any) (any, error) {
	if !isValidKey(key) {
		return nil, &InvalidTokenError{Key: key}
	}

	if scope != nil {
		if v, ok := scope.lookupExternal(key); ok {
			return v, nil
		}
		if v, ok := scope.lookupCached(key); ok {
			return v, nil
		}
	}

	if mr, ok := c.store.GetMulti(key); ok {
		return c.resolveMulti(mr, scope, chain)
	}

	if kr, ok := c.store.GetKeyed(key); ok {
		return c.resolveKeyed(key, kr, scope, chain), nil
	}

	reg, ok := c.store.Get(key)
	if !ok {
		if scope != nil && scope.parent != nil {
			return c.resolve(key, scope.parent, chain, args)
		}
		return nil, &MissingRegistrationError{Key: key, Chain: chain}
	}

	if containsKey(chain, key) {
		return nil, &CircularDependencyError{Chain: append(append([]Key(nil), chain...), key)}
	}

	ctor, ok := reg.Implementation.(*Constructor)
	if !ok {
		return nil, &InvalidTokenError{Key: reg.Implementation}
	}

	switch Lifetime(reg.Lifetime) {
	case LifetimeSingleton:
		if inst, ok := c.singletons[key]; ok {
			return inst, nil
		}
		inst, err := c.construct(ctor, scope, append(chain, key), args)
		if err != nil {
			return nil, err
		}
		if err := checkWarmup(ctor, LifetimeSingleton, key); err != nil {
			return nil, err
		}
		c.singletons[key] = inst
		return inst, nil

	case LifetimeScoped:
		if scope == nil {
			return nil, &LifetimeViolationError{Key: key, Detail: "scoped lifetime resolved with no scope in play"}
		}
		inst, err := c.construct(ctor, scope, append(chain, key), args)
		if err != nil {
			return nil, err
		}
		if err := checkWarmup(ctor, LifetimeScoped, key); err != nil {
			return nil, err
		}
		scope.track(key, inst)
		return inst, nil

	case LifetimeFactory:
		inst, err := c.construct(ctor, scope, append(chain, key), args)
		if err != nil {
			return nil, err
		}
		if err := checkWarmup(ctor, LifetimeFactory, key); err != nil {
			return nil, err
		}
		return inst, nil

	default:
		return nil, &LifetimeViolationError{Key: key, Detail: fmt.Sprintf("unknown lifetime %q", reg.Lifetime)}
	}
}

// resolveMulti builds every implementation in mr fresh, in registration
// order — multi-registration members are never singleton-cached (the
// factory-semantics resolution chosen for spec.md §9's open question).
func (c *Container) resolveMulti(mr *registry.MultiRegistration, scope *Scope, chain []Key) (any, error) {
	instances := make([]any, len(mr.Implementations))
	for i, implKey := range mr.Implementations {
		ctor, ok := implKey.(*Constructor)
		if !ok {
			return nil, &InvalidTokenError{Key: implKey}
		}
		inst, err := c.construct(ctor, scope, chain, nil)
		if err != nil {
			return nil, err
		}
		instances[i] = inst
	}
	return instances, nil
}

// resolveKeyed returns a callable that constructs a fresh instance by
// string key on every call; unknown keys fail listing the keys that were
// actually registered, in insertion order.
func (c *Container) resolveKeyed(token Key, kr *registry.KeyedRegistration, scope *Scope, chain []Key) KeyedFactory {
	return func(k string) (any, error) {
		implKey, ok := kr.Entries[k]
		if !ok {
			return nil, &MissingRegistrationError{
				Key:       k,
				Chain:     append(chain, token),
				Available: append([]string(nil), kr.Order...),
			}
		}
		ctor, ok := implKey.(*Constructor)
		if !ok {
			return nil, &InvalidTokenError{Key: implKey}
		}
		return c.construct(ctor, scope, chain, nil)
	}
}

func checkWarmup(ctor *Constructor, lifetime Lifetime, key Key) error {
	if lifetime != LifetimeSingleton && ctor.Implements(warmerType) {
		return &LifetimeViolationError{Key: key, Detail: "Warmup-capable instance resolved under a non-singleton lifetime"}
	}
	return nil
}

// construct invokes ctor's parameters via the metadata store: runtime
// markers pull the next positional argument, everything else resolves
// through the container.
func (c *Container) construct(ctor *Constructor, scope *Scope, chain []Key, args []any) (any, error) {
	n := ctor.NumParams()
	params := make([]any, n)
	argIdx := 0
	for i := 0; i < n; i++ {
		if c.metadata.isRuntimeParam(ctor, i) {
			if argIdx >= len(args) {
				return nil, fmt.Errorf("%s: %s parameter %d is runtime-supplied but no argument was given", errPrefix, ctor, i)
			}
			params[i] = args[argIdx]
			argIdx++
			continue
		}
		depKey, ok := c.metadata.dependencyKeyFor(ctor, i)
		if !ok {
			return nil, fmt.Errorf("%s: %s parameter %d has no dependency key and no runtime marker", errPrefix, ctor, i)
		}
		v, err := c.resolve(depKey, scope, chain, nil)
		if err != nil {
			return nil, err
		}
		params[i] = v
	}
	inst, err := ctor.invoke(params)
	if err != nil {
		return nil, wrapConstructorError(ctor, chain, err)
	}
	return inst, nil
}

func containsKey(chain []Key, key Key) bool {
	for _, k := range chain {
		if k == key {
			return true
		}
	}
	return false
}
