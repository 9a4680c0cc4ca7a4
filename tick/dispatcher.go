// Package tick implements the single shared subscriber to a host's periodic
// signals, fanning callbacks out to every registered tickable instance
// regardless of how many scopes produced them. Each nasc Container builds
// its own Dispatcher. Exactly one Dispatcher subscription exists per signal
// kind, no matter how many Tickables register.
package tick

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/toutaio/nasc/host"
)

// Tickable receives the logic/physics signal every frame.
type Tickable interface {
	Tick(deltaTime float64)
}

// FixedTickable receives the logic signal every frame, dispatched after all
// Tickables for that frame have run.
type FixedTickable interface {
	FixedTick(deltaTime float64)
}

// RenderTickable receives the pre-render signal, on hosts that have one.
type RenderTickable interface {
	RenderTick(deltaTime float64)
}

// Dispatcher is a container's tick fan-out. It owns at most two
// subscriptions to the host's periodic signals regardless of how many
// Tickables are registered.
type Dispatcher struct {
	host   host.Host
	logger *zap.Logger

	logicTicks  []Tickable
	fixedTicks  []FixedTickable
	renderTicks []RenderTickable

	paused bool

	unsubLogic  host.UnsubscribeFunc
	unsubRender host.UnsubscribeFunc

	logicTickCount  uint64
	renderTickCount uint64
}

// New creates a Dispatcher bound to the given host. A nil logger is
// replaced with a no-op logger.
func New(h host.Host, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{host: h, logger: logger}
}

// RegisterTickable appends t to the logic-tick list, subscribing to the
// host's logic signal on first use.
func (d *Dispatcher) RegisterTickable(t Tickable) {
	d.logicTicks = append(d.logicTicks, t)
	d.ensureLogicSubscription()
}

// RegisterFixedTickable appends t to the fixed-tick list, subscribing to
// the host's logic signal on first use (shared with Tickable).
func (d *Dispatcher) RegisterFixedTickable(t FixedTickable) {
	d.fixedTicks = append(d.fixedTicks, t)
	d.ensureLogicSubscription()
}

// RegisterRenderTickable appends t to the render-tick list, subscribing to
// the host's render signal on first use if the host supports one.
func (d *Dispatcher) RegisterRenderTickable(t RenderTickable) {
	d.renderTicks = append(d.renderTicks, t)
	d.ensureRenderSubscription()
}

// UnregisterTickable removes t from the logic-tick list via unordered
// (swap-with-last) removal. Ordering across frames is not stable after an
// unregister.
func (d *Dispatcher) UnregisterTickable(t Tickable) {
	d.logicTicks = swapRemove(d.logicTicks, t)
}

// UnregisterFixedTickable removes t from the fixed-tick list.
func (d *Dispatcher) UnregisterFixedTickable(t FixedTickable) {
	d.fixedTicks = swapRemove(d.fixedTicks, t)
}

// UnregisterRenderTickable removes t from the render-tick list.
func (d *Dispatcher) UnregisterRenderTickable(t RenderTickable) {
	d.renderTicks = swapRemove(d.renderTicks, t)
}

// Pause stops dispatch to every subscriber without tearing down the host
// subscriptions.
func (d *Dispatcher) Pause() { d.paused = true }

// Resume re-enables dispatch after Pause.
func (d *Dispatcher) Resume() { d.paused = false }

// Paused reports whether dispatch is currently suspended.
func (d *Dispatcher) Paused() bool { return d.paused }

// LogicTickCount returns the number of logic-signal frames dispatched so
// far, counted regardless of pause state.
func (d *Dispatcher) LogicTickCount() uint64 { return d.logicTickCount }

// RenderTickCount returns the number of render-signal frames dispatched so
// far.
func (d *Dispatcher) RenderTickCount() uint64 { return d.renderTickCount }

// DebugInfo is the diagnostic snapshot returned by DebugInfo.
type DebugInfo struct {
	LogicTickables  int
	FixedTickables  int
	RenderTickables int
	Paused          bool
	LogicSubscribed bool
	RenderSubscribed bool
}

// DebugInfo reports subscriber counts and pause state.
func (d *Dispatcher) DebugInfo() DebugInfo {
	return DebugInfo{
		LogicTickables:   len(d.logicTicks),
		FixedTickables:   len(d.fixedTicks),
		RenderTickables:  len(d.renderTicks),
		Paused:           d.paused,
		LogicSubscribed:  d.unsubLogic != nil,
		RenderSubscribed: d.unsubRender != nil,
	}
}

// Destroy disconnects both host subscriptions and clears every list. A
// later Register call subscribes to the host again.
func (d *Dispatcher) Destroy() {
	if d.unsubLogic != nil {
		d.unsubLogic()
		d.unsubLogic = nil
	}
	if d.unsubRender != nil {
		d.unsubRender()
		d.unsubRender = nil
	}
	d.logicTicks = nil
	d.fixedTicks = nil
	d.renderTicks = nil
}

func (d *Dispatcher) ensureLogicSubscription() {
	if d.unsubLogic != nil {
		return
	}
	d.unsubLogic = d.host.OnLogicTick(d.onLogicTick)
}

func (d *Dispatcher) ensureRenderSubscription() {
	if d.unsubRender != nil || !d.host.SupportsRender() {
		return
	}
	d.unsubRender = d.host.OnRenderTick(d.onRenderTick)
}

func (d *Dispatcher) onLogicTick(deltaTime float64) {
	d.logicTickCount++
	if d.paused {
		return
	}
	for _, t := range d.logicTicks {
		d.trap(func() { t.Tick(deltaTime) })
	}
	for _, t := range d.fixedTicks {
		d.trap(func() { t.FixedTick(deltaTime) })
	}
}

func (d *Dispatcher) onRenderTick(deltaTime float64) {
	d.renderTickCount++
	if d.paused {
		return
	}
	for _, t := range d.renderTicks {
		d.trap(func() { t.RenderTick(deltaTime) })
	}
}

// trap calls fn, recovering a panic and logging it instead of letting it
// propagate into the host's frame callback.
func (d *Dispatcher) trap(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tick callback panicked", zap.Any("recovered", fmt.Sprintf("%v", r)))
		}
	}()
	fn()
}

func swapRemove[T comparable](items []T, target T) []T {
	for i, it := range items {
		if it == target {
			last := len(items) - 1
			items[i] = items[last]
			return items[:last]
		}
	}
	return items
}
