package nasc

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

const errPrefix = "nasc"

// renderChain formats a resolution chain using the spec's arrow-glyph join,
// e.g. "A → B → A".
func renderChain(chain []Key) string {
	parts := make([]string, len(chain))
	for i, k := range chain {
		parts[i] = describeKey(k)
	}
	return strings.Join(parts, " → ")
}

// CircularDependencyError is raised when resolving a key re-enters itself
// before bottoming out, carrying the exact recursion stack at the moment
// of detection.
type CircularDependencyError struct {
	Chain []Key
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("%s: circular dependency detected: %s", errPrefix, renderChain(e.Chain))
}

// MissingRegistrationError is raised when a key has no Registration and, if
// a Scope was in play, no ancestor scope had one either — and when a keyed
// registration's callable is invoked with an unknown string key, in which
// case Available lists the keys that were registered.
type MissingRegistrationError struct {
	Key       Key
	Chain     []Key
	Available []string
}

func (e *MissingRegistrationError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("%s: missing keyed registration %q for %s (available: %s)",
			errPrefix, e.Key, describeKey(e.Chain[len(e.Chain)-1]), strings.Join(e.Available, ", "))
	}
	if len(e.Chain) == 0 {
		return fmt.Sprintf("%s: missing registration for %s", errPrefix, describeKey(e.Key))
	}
	return fmt.Sprintf("%s: missing registration for %s (resolution chain: %s)",
		errPrefix, describeKey(e.Key), renderChain(e.Chain))
}

// InvalidTokenError is raised when a key is neither a *Token nor a
// *Constructor.
type InvalidTokenError struct {
	Key Key
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("%s: invalid key %v: must be a Token or a Constructor", errPrefix, e.Key)
}

// LifetimeViolationError is raised when a resolution violates a lifetime
// rule: a scoped key resolved with no Scope in play, or a Warmer-capable
// instance built under a non-singleton lifetime.
type LifetimeViolationError struct {
	Key    Key
	Detail string
}

func (e *LifetimeViolationError) Error() string {
	return fmt.Sprintf("%s: lifetime violation for %s: %s", errPrefix, describeKey(e.Key), e.Detail)
}

// ConstructorError wraps a panic or error raised while invoking a
// Constructor, once, with the resolution chain active at the time.
type ConstructorError struct {
	Key   Key
	Chain []Key
	Cause error
}

func (e *ConstructorError) Error() string {
	chain := ""
	if len(e.Chain) > 0 {
		chain = fmt.Sprintf(" (resolution chain: %s)", renderChain(e.Chain))
	}
	return fmt.Sprintf("%s: constructor for %s failed%s: %v", errPrefix, describeKey(e.Key), chain, e.Cause)
}

func (e *ConstructorError) Unwrap() error { return e.Cause }

// wrapConstructorError wraps cause in a *ConstructorError unless errors.As
// already finds a *ConstructorError in cause's chain, so a failure is
// wrapped only once.
func wrapConstructorError(key Key, chain []Key, cause error) error {
	var existing *ConstructorError
	if errors.As(cause, &existing) {
		return cause
	}
	return &ConstructorError{Key: key, Chain: append([]Key(nil), chain...), Cause: cause}
}

// DuplicateRegistrationError is raised by use() when a module tries to
// register a key that already has a Registration.
type DuplicateRegistrationError struct {
	Key Key
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s: duplicate registration for %s", errPrefix, describeKey(e.Key))
}

// ValidationError accumulates every problem validate() finds across the
// whole registration set, rendered as a numbered list.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: validation failed", errPrefix)
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: validation failed: %v", errPrefix, e.Errors[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: validation failed with %d errors:\n", errPrefix, len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %v\n", i+1, err)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error { return e.Errors }

// newValidationError builds a *ValidationError from an accumulated
// multierr chain, or nil if errs is empty — see validate.go.
func newValidationError(errs error) error {
	if errs == nil {
		return nil
	}
	collected := multierr.Errors(errs)
	if len(collected) == 0 {
		return nil
	}
	return &ValidationError{Errors: collected}
}
