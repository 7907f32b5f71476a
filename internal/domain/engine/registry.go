package engine

import "starweave/internal/domain/world"

// Handler reacts to one event and may enqueue follow-up events (a chain
// reaction). Handlers must be pure: same world and event, same output.
type Handler func(world.GameWorld, world.GameEvent) (world.GameWorld, []world.GameEvent)

// Registry maps event categories to handlers. It is built once at engine
// startup and passed into the tick processor, never held as module state, so
// ProcessTick stays a pure function of its arguments.
type Registry struct {
	handlers map[world.EventCategory][]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[world.EventCategory][]Handler{}}
}

// Register appends a handler for the category. Handlers run in registration
// order.
func (r *Registry) Register(category world.EventCategory, h Handler) {
	r.handlers[category] = append(r.handlers[category], h)
}

func (r *Registry) handlersFor(e world.GameEvent) []Handler {
	if r == nil {
		return nil
	}
	return r.handlers[e.Category()]
}
