package world

// Resource is a stockpile attached to a node. MaxCapacity <= 0 means the
// stockpile is uncapped.
type Resource struct {
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	RegenRate   int    `json:"regen_rate"`
	MaxCapacity int    `json:"max_capacity"`
}

// ResourceTick is the outcome of regenerating a single resource for one tick.
// WasDepleted and WasCapReached are edge-triggered: they report the
// transition into zero or into the cap, not the level itself.
type ResourceTick struct {
	Resource      Resource
	Delta         int
	WasDepleted   bool
	WasCapReached bool
}

// RateModifier adjusts the effective regeneration of one resource type for a
// single tick, e.g. a producer or consumer attached to the node.
type RateModifier struct {
	ResourceType string
	Rate         int
}

// TickResource applies one tick of regeneration with no modifiers.
func TickResource(r Resource) ResourceTick {
	return tickResource(r, 0)
}

func tickResource(r Resource, modifier int) ResourceTick {
	before := r.Quantity
	next := before + r.RegenRate + modifier
	if next < 0 {
		next = 0
	}
	if r.MaxCapacity > 0 && next > r.MaxCapacity {
		next = r.MaxCapacity
	}
	r.Quantity = next
	return ResourceTick{
		Resource:      r,
		Delta:         next - before,
		WasDepleted:   before > 0 && next == 0,
		WasCapReached: r.MaxCapacity > 0 && next == r.MaxCapacity && before < r.MaxCapacity,
	}
}

// TickNodeResources regenerates every resource on the node, folding any
// producer/consumer modifiers into the base regen rate before clamping. The
// returned ticks are in the node's resource order, one entry per resource.
func TickNodeResources(n Node, mods ...RateModifier) (Node, []ResourceTick) {
	if len(n.Resources) == 0 {
		return n, nil
	}
	extra := map[string]int{}
	for _, m := range mods {
		extra[m.ResourceType] += m.Rate
	}

	next := n.Clone()
	ticks := make([]ResourceTick, 0, len(next.Resources))
	for i, r := range next.Resources {
		rt := tickResource(r, extra[r.Type])
		next.Resources[i] = rt.Resource
		ticks = append(ticks, rt)
	}
	return next, ticks
}
