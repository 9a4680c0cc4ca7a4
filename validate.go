package nasc

import (
	"fmt"

	"go.uber.org/multierr"
)

// validate iterates every registration and checks that each non-runtime
// dependency key resolves to a registration in this container — a
// regular, multi, or keyed one. Errors accumulate via multierr instead of
// the throw-and-catch idiom spec.md §9 flags as worth dropping in a
// rewrite, and are reported together as one *ValidationError. Idempotent:
// a second call with no intervening use() is a no-op.
func (c *Container) validate() error {
	if c.validated {
		return nil
	}

	var combined error
	for _, key := range c.store.Order() {
		reg, ok := c.store.Get(key)
		if !ok {
			continue
		}
		ctor, ok := reg.Implementation.(*Constructor)
		if !ok {
			continue
		}
		for i := 0; i < ctor.NumParams(); i++ {
			if c.metadata.isRuntimeParam(ctor, i) {
				continue
			}
			depKey, ok := c.metadata.dependencyKeyFor(ctor, i)
			if !ok {
				combined = multierr.Append(combined, fmt.Errorf(
					"%s: %s parameter %d has no dependency key and no runtime marker",
					errPrefix, describeKey(key), i))
				continue
			}
			if !c.hasRegistrationFor(depKey) {
				combined = multierr.Append(combined, fmt.Errorf(
					"%s: %s depends on unregistered %s",
					errPrefix, describeKey(key), describeKey(depKey)))
			}
		}
	}

	if err := newValidationError(combined); err != nil {
		return err
	}
	c.validated = true
	return nil
}
