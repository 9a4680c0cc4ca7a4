package nasc

// ParamDescriptor is one constructor parameter's injection source, built by
// Dep, Runtime, or Auto and consumed by Describe. This is the explicit
// registration-time call spec.md §9 offers in place of decorators: "an
// explicit registration-time call that takes parameter descriptors as
// data."
type ParamDescriptor struct {
	kind paramKind
	key  Key
}

type paramKind int

const (
	paramDependency paramKind = iota
	paramRuntime
	paramAuto
)

// Dep declares a parameter injected from an explicit key (token or
// constructor) — the normal dependency case.
func Dep(key Key) ParamDescriptor { return ParamDescriptor{kind: paramDependency, key: key} }

// Runtime declares a parameter supplied by the caller at construction time
// rather than resolved from the container.
func Runtime() ParamDescriptor { return ParamDescriptor{kind: paramRuntime} }

// Auto declares a parameter's auto-wired fallback key, consulted only when
// no explicit Dep is given for the same index.
func Auto(key Key) ParamDescriptor { return ParamDescriptor{kind: paramAuto, key: key} }

// Describe stamps ctor's full parameter descriptor list onto m, one
// ParamDescriptor per positional parameter in order. Call this once per
// constructor at registration time; the container never re-derives it.
func (m *Metadata) Describe(ctor *Constructor, params ...ParamDescriptor) {
	for i, p := range params {
		switch p.kind {
		case paramRuntime:
			m.RuntimeParams(ctor, i)
		case paramDependency:
			m.setDependencyToken(ctor, i, p.key)
		case paramAuto:
			m.setAutoWireAt(ctor, i, p.key)
		}
	}
}

// Describe stamps ctor's parameter descriptors onto the process-wide
// default metadata store.
func Describe(ctor *Constructor, params ...ParamDescriptor) {
	DefaultMetadata.Describe(ctor, params...)
}
