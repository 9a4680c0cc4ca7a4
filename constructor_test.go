package nasc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nasc "github.com/toutaio/nasc"
)

type widget struct{ name string }

func TestNewConstructorSingleReturn(t *testing.T) {
	ctor := nasc.NewConstructor(func() *widget { return &widget{name: "ok"} })
	assert.Equal(t, 0, ctor.NumParams())
}

func TestNewConstructorWithErrorReturn(t *testing.T) {
	ctor := nasc.NewConstructor(func(name string) (*widget, error) {
		if name == "" {
			return nil, errors.New("empty name")
		}
		return &widget{name: name}, nil
	})
	assert.Equal(t, 1, ctor.NumParams())
}

func TestNewConstructorPanicsOnNonFunction(t *testing.T) {
	assert.Panics(t, func() {
		nasc.NewConstructor(42)
	})
}

func TestNewConstructorPanicsOnBadReturnShape(t *testing.T) {
	assert.Panics(t, func() {
		nasc.NewConstructor(func() {})
	})
	assert.Panics(t, func() {
		nasc.NewConstructor(func() (*widget, *widget, error) { return nil, nil, nil })
	})
	assert.Panics(t, func() {
		nasc.NewConstructor(func() (*widget, string) { return nil, "" })
	})
}

func TestConstructorStringRendersReturnType(t *testing.T) {
	ctor := nasc.NewConstructor(func() *widget { return &widget{} })
	require.Contains(t, ctor.String(), "widget")
}
