package nasc

import "github.com/toutaio/nasc/tick"

// Diagnostics is the small introspection surface spec.md §2 allocates to
// the Diagnostics component: tick counters plus whatever the tick
// dispatcher itself already exposes for debugging.
type Diagnostics struct {
	Ticks tick.DebugInfo
	Logic uint64
	Render uint64
}

// Diagnostics reports the container's tick dispatcher counters and
// subscriber snapshot.
func (c *Container) Diagnostics() Diagnostics {
	d := c.dispatcher
	return Diagnostics{
		Ticks:  d.DebugInfo(),
		Logic:  d.LogicTickCount(),
		Render: d.RenderTickCount(),
	}
}
