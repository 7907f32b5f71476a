package graph

import (
	"container/heap"

	"starweave/internal/domain/world"
)

// ReachableNodes expands outward from the source, Dijkstra-style, bounded by
// a maximum cumulative cost. It returns the minimal cost per reachable node,
// including the source itself at cost zero. The budget is inclusive: a node
// exactly at the limit is reachable.
func ReachableNodes(w world.GameWorld, sourceID string, costBudget float64, cost CostFunc, ctx Context) (map[string]float64, error) {
	if _, ok := w.Nodes[sourceID]; !ok {
		return nil, ErrNodeNotFound
	}

	edges := adjacency(w, cost, ctx)

	open := &frontier{}
	heap.Init(open)
	seq := 0
	push := func(nodeID string, g float64) {
		heap.Push(open, &frontierItem{nodeID: nodeID, g: g, f: g, seq: seq})
		seq++
	}

	dist := map[string]float64{sourceID: 0}
	settled := map[string]bool{}
	push(sourceID, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*frontierItem)
		if settled[current.nodeID] {
			continue
		}
		settled[current.nodeID] = true

		for _, e := range edges[current.nodeID] {
			next := current.g + e.cost
			if next > costBudget {
				continue
			}
			if best, seen := dist[e.to]; seen && next >= best {
				continue
			}
			dist[e.to] = next
			push(e.to, next)
		}
	}
	return dist, nil
}
