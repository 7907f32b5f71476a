package engine

import "starweave/internal/domain/world"

type queuedEvent struct {
	event world.GameEvent
	depth int
}

// runQueue drains the tick's events FIFO, invoking registered handlers and
// feeding their follow-up events back into the queue with an incremented
// chain depth. Chains deeper than MaxEventDepth and events beyond
// MaxEventsPerTick are dropped, and the drop is surfaced as a single
// EventsDropped diagnostic rather than ignored.
func runQueue(w world.GameWorld, cfg Config, reg *Registry, initial []world.GameEvent, tick int64) (world.GameWorld, []world.GameEvent) {
	queue := make([]queuedEvent, 0, len(initial))
	for _, e := range initial {
		queue = append(queue, queuedEvent{event: e})
	}

	processed := make([]world.GameEvent, 0, len(initial))
	droppedByCount := 0
	droppedByDepth := 0

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if len(processed) >= cfg.MaxEventsPerTick {
			droppedByCount++
			continue
		}
		processed = append(processed, item.event)

		for _, h := range reg.handlersFor(item.event) {
			var children []world.GameEvent
			w, children = h(w, item.event)
			for _, child := range children {
				if item.depth+1 > cfg.MaxEventDepth {
					droppedByDepth++
					continue
				}
				queue = append(queue, queuedEvent{event: child, depth: item.depth + 1})
			}
		}
	}

	if droppedByCount > 0 || droppedByDepth > 0 {
		processed = append(processed, world.GameEvent{
			Type: world.EventsDropped,
			Tick: tick,
			Payload: world.SystemPayload{
				"dropped_by_count": droppedByCount,
				"dropped_by_depth": droppedByDepth,
			},
		})
	}
	return w, processed
}
