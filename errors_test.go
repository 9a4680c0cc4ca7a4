package nasc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nasc "github.com/toutaio/nasc"
)

func TestCircularDependencyErrorRendersArrowChain(t *testing.T) {
	a := nasc.CreateToken("A")
	b := nasc.CreateToken("B")
	err := &nasc.CircularDependencyError{Chain: []nasc.Key{a, b, a}}

	assert.Contains(t, err.Error(), "→")
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestMissingRegistrationErrorPlainKey(t *testing.T) {
	tok := nasc.CreateToken("Logger")
	err := &nasc.MissingRegistrationError{Key: tok}

	assert.Contains(t, err.Error(), "missing registration")
	assert.Contains(t, err.Error(), "Logger")
}

func TestMissingRegistrationErrorListsAvailableKeyedOptions(t *testing.T) {
	parent := nasc.CreateToken("Shape")
	err := &nasc.MissingRegistrationError{
		Key:       "triangle",
		Chain:     []nasc.Key{parent},
		Available: []string{"circle", "square"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "triangle")
	assert.Contains(t, msg, "circle")
	assert.Contains(t, msg, "square")
}

func TestInvalidTokenErrorMessage(t *testing.T) {
	err := &nasc.InvalidTokenError{Key: 42}
	assert.Contains(t, err.Error(), "invalid key")
}

func TestLifetimeViolationErrorMessage(t *testing.T) {
	tok := nasc.CreateToken("Session")
	err := &nasc.LifetimeViolationError{Key: tok, Detail: "scoped key resolved with no scope in play"}
	assert.Contains(t, err.Error(), "Session")
	assert.Contains(t, err.Error(), "scoped key resolved")
}

func TestDuplicateRegistrationErrorMessage(t *testing.T) {
	tok := nasc.CreateToken("Clock")
	err := &nasc.DuplicateRegistrationError{Key: tok}
	assert.Contains(t, err.Error(), "duplicate registration")
	assert.Contains(t, err.Error(), "Clock")
}

func TestValidationErrorNumbersMultipleCauses(t *testing.T) {
	err := &nasc.ValidationError{Errors: []error{errors.New("cause one"), errors.New("cause two")}}
	msg := err.Error()
	assert.Contains(t, msg, "2 errors")
	assert.Contains(t, msg, "1. cause one")
	assert.Contains(t, msg, "2. cause two")
}

func TestValidationErrorUnwrapsToUnderlyingErrors(t *testing.T) {
	cause := errors.New("missing dependency")
	err := &nasc.ValidationError{Errors: []error{cause}}
	require.True(t, errors.Is(err, cause))
}
