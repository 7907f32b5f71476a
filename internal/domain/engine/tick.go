package engine

import (
	"time"

	"starweave/internal/domain/territory"
	"starweave/internal/domain/world"
)

// Result is the output of one tick: the successor world, every event
// processed (including dropped-event diagnostics), and the tick number that
// was produced. Elapsed is filled in by the scheduler, not the processor.
type Result struct {
	World         world.GameWorld
	Events        []world.GameEvent
	ProcessedTick int64
	Elapsed       time.Duration
}

// Processor runs the fixed per-tick phase order. It holds no mutable state;
// the same processor value can serve any number of worlds.
type Processor struct {
	Config    Config
	Registry  *Registry
	Territory territory.Service
}

func NewProcessor(cfg Config, reg *Registry, terr territory.Service) Processor {
	if reg == nil {
		reg = NewRegistry()
	}
	return Processor{Config: cfg.normalized(), Registry: reg, Territory: terr}
}

// ProcessTick advances the world by exactly one tick. The phase order is
// fixed: claims, resource regeneration, gateway cooldowns, the TickProcessed
// marker, then the event queue with chain reactions. A paused world passes
// through untouched. The incoming event queue belongs to the prior tick and
// is discarded.
func (p Processor) ProcessTick(w world.GameWorld, claims []territory.ClaimAction, disconnected map[string]bool) Result {
	if w.IsPaused {
		return Result{World: w, ProcessedTick: w.CurrentTick}
	}
	tick := w.CurrentTick + 1

	// Work on an owned clone; the caller's world and its prior snapshots
	// stay valid for concurrent readers.
	next := w.Clone()
	var events []world.GameEvent
	next, events = p.Territory.ProcessClaims(next, claims, disconnected, tick)

	next, resourceEvents := tickResources(next, tick)
	events = append(events, resourceEvents...)

	next, gatewayEvents := world.TickGatewayCooldowns(next, tick)
	events = append(events, gatewayEvents...)

	events = append(events, world.GameEvent{
		Type:    world.EventTickProcessed,
		Tick:    tick,
		Payload: world.SystemPayload{"tick": tick},
	})

	next, processed := runQueue(next, p.Config, p.Registry, events, tick)

	next.CurrentTick = tick
	next.EventQueue = processed
	return Result{World: next, Events: processed, ProcessedTick: tick}
}

// ProcessTicks folds ProcessTick n times with no external claims,
// concatenating events. It is the catch-up/fast-forward path and produces
// the same final state as n sequential single-tick calls.
func (p Processor) ProcessTicks(w world.GameWorld, n int) Result {
	out := Result{World: w, ProcessedTick: w.CurrentTick}
	for i := 0; i < n; i++ {
		step := p.ProcessTick(out.World, nil, nil)
		out.World = step.World
		out.Events = append(out.Events, step.Events...)
		out.ProcessedTick = step.ProcessedTick
	}
	return out
}

// tickResources regenerates every node's stockpiles against the post-claim
// snapshot, in sorted node order, emitting at most one event per resource
// per event type.
func tickResources(w world.GameWorld, tick int64) (world.GameWorld, []world.GameEvent) {
	var events []world.GameEvent
	for _, nodeID := range w.SortedNodeIDs() {
		node := w.Nodes[nodeID]
		next, ticks := world.TickNodeResources(node)
		w.Nodes[nodeID] = next
		for _, rt := range ticks {
			payload := world.ResourcePayload{
				ResourceType: rt.Resource.Type,
				Quantity:     rt.Resource.Quantity,
				Delta:        rt.Delta,
			}
			if rt.Delta > 0 {
				events = append(events, world.GameEvent{
					Type: world.EventResourceProduced, Tick: tick, EntityID: nodeID, Payload: payload,
				})
			}
			if rt.WasDepleted {
				events = append(events, world.GameEvent{
					Type: world.EventResourceDepleted, Tick: tick, EntityID: nodeID, Payload: payload,
				})
			}
			if rt.WasCapReached {
				events = append(events, world.GameEvent{
					Type: world.EventResourceCapReached, Tick: tick, EntityID: nodeID, Payload: payload,
				})
			}
		}
	}
	return w, events
}
