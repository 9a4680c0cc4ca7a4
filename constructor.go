package nasc

import (
	"fmt"
	"reflect"
)

var errorInterfaceType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor is a runtime handle around a Go function that builds one
// instance when invoked with positional arguments. It is pointer-identity,
// so it is directly usable as a map key.
//
// Supported function shapes:
//
//	func(deps...) T
//	func(deps...) (T, error)
type Constructor struct {
	fn         reflect.Value
	fnType     reflect.Type
	numParams  int
	returnType reflect.Type
	returnsErr bool
}

// NewConstructor wraps fn, a Go function value, as a Constructor. It panics
// if fn is not a function or does not return (T) or (T, error) — this is a
// registration-time programmer error, not a runtime resolution failure.
func NewConstructor(fn any) *Constructor {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("nasc: constructor must be a function, got %s", t.Kind()))
	}

	numOut := t.NumOut()
	if numOut == 0 || numOut > 2 {
		panic(fmt.Sprintf("nasc: constructor must return (T) or (T, error), got %d return values", numOut))
	}

	returnsErr := false
	if numOut == 2 {
		if !t.Out(1).Implements(errorInterfaceType) {
			panic(fmt.Sprintf("nasc: constructor's second return value must be error, got %s", t.Out(1)))
		}
		returnsErr = true
	}

	return &Constructor{
		fn:         v,
		fnType:     t,
		numParams:  t.NumIn(),
		returnType: t.Out(0),
		returnsErr: returnsErr,
	}
}

// NumParams returns the number of positional parameters the underlying
// function accepts.
func (c *Constructor) NumParams() int { return c.numParams }

// ReturnType reports the Go type this constructor produces, used for the
// metadata store's prototype-chain walk over embedded struct fields.
func (c *Constructor) ReturnType() reflect.Type { return c.returnType }

// String renders the constructor's target type for error messages and
// debug snapshots.
func (c *Constructor) String() string {
	return fmt.Sprintf("Constructor(%s)", c.returnType)
}

// Implements reports whether this constructor's return type (or a pointer
// to it) implements iface — used by launch() to decide, before ever
// constructing an instance, whether a singleton exposes Start.
func (c *Constructor) Implements(iface reflect.Type) bool {
	if c.returnType.Implements(iface) {
		return true
	}
	if c.returnType.Kind() != reflect.Ptr && reflect.PointerTo(c.returnType).Implements(iface) {
		return true
	}
	return false
}

// invoke calls the wrapped function with the given positional arguments,
// unwrapping the (T, error) return shape. A panic inside the call is
// recovered and returned as an error.
func (c *Constructor) invoke(args []any) (instance any, err error) {
	if len(args) != c.numParams {
		return nil, fmt.Errorf("nasc: %s expects %d parameters, got %d", c, c.numParams, len(args))
	}

	in := make([]reflect.Value, c.numParams)
	for i, a := range args {
		paramType := c.fnType.In(i)
		if a == nil {
			in[i] = reflect.Zero(paramType)
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	defer func() {
		if r := recover(); r != nil {
			instance, err = nil, fmt.Errorf("nasc: %s panicked: %v", c, r)
		}
	}()
	out := c.fn.Call(in)
	instance = out[0].Interface()

	if c.returnsErr {
		if errVal := out[1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}

	return instance, nil
}
