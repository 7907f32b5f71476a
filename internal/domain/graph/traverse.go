// Package graph implements traversal legality and graph search over the
// world's node/connection topology. Searches are pure functions of the world
// value; an inactive or cooling-down connection is simply absent from the
// graph for that tick.
package graph

import "starweave/internal/domain/world"

// Context carries what the traverser can spend on gateway activation.
type Context struct {
	Funds map[string]int
}

// CostFunc maps a connection to its traversal cost, letting the same search
// code serve distance, time, resource, or danger interpretations.
type CostFunc func(world.Connection) float64

// DefaultCost reads the connection's configured travel cost.
func DefaultCost(c world.Connection) float64 {
	return c.TravelCost
}

// CanTraverse reports whether the connection is usable right now: it must be
// active, and a gateway must be off cooldown and affordable.
func CanTraverse(c world.Connection, ctx Context) bool {
	if !c.IsActive {
		return false
	}
	if c.Type != world.ConnectionGateway {
		return true
	}
	if c.IsCoolingDown() {
		return false
	}
	if c.ActivationCost.Amount <= 0 {
		return true
	}
	return ctx.Funds[c.ActivationCost.Type] >= c.ActivationCost.Amount
}

// TraversalCost evaluates the connection under the supplied cost function,
// defaulting to the configured travel cost.
func TraversalCost(c world.Connection, cost CostFunc) float64 {
	if cost == nil {
		cost = DefaultCost
	}
	return cost(c)
}

type edge struct {
	to     string
	connID string
	cost   float64
}

// adjacency builds the traversable edge list per node, in sorted connection
// order so expansion is deterministic. Connections are undirected in
// practice: each yields an edge in both directions.
func adjacency(w world.GameWorld, cost CostFunc, ctx Context) map[string][]edge {
	out := map[string][]edge{}
	for _, id := range w.SortedConnectionIDs() {
		c := w.Connections[id]
		if !CanTraverse(c, ctx) {
			continue
		}
		if _, ok := w.Nodes[c.FromNodeID]; !ok {
			continue
		}
		if _, ok := w.Nodes[c.ToNodeID]; !ok {
			continue
		}
		weight := TraversalCost(c, cost)
		out[c.FromNodeID] = append(out[c.FromNodeID], edge{to: c.ToNodeID, connID: id, cost: weight})
		out[c.ToNodeID] = append(out[c.ToNodeID], edge{to: c.FromNodeID, connID: id, cost: weight})
	}
	return out
}
