package graph

import (
	"container/heap"
	"errors"

	"starweave/internal/domain/world"
)

var (
	ErrNodeNotFound = errors.New("graph: node not found")
	ErrNoPath       = errors.New("graph: no path")
)

// Path is an ordered walk through the graph and its total traversal cost.
type Path struct {
	NodeIDs   []string
	TotalCost float64
}

type frontierItem struct {
	nodeID string
	f      float64
	g      float64
	seq    int
	index  int
}

// frontier orders candidates by estimated total cost; among equal-cost
// candidates the one discovered first wins, keeping results stable across
// runs.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}
func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*f)
	*f = append(*f, item)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

func manhattan(a, b world.Position) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// FindPath runs A* from source to target under the given cost function and
// traversal context. It returns ErrNodeNotFound when either endpoint is
// missing from the world and ErrNoPath when the endpoints are disconnected.
func FindPath(w world.GameWorld, sourceID, targetID string, cost CostFunc, ctx Context) (Path, error) {
	source, ok := w.Nodes[sourceID]
	if !ok {
		return Path{}, ErrNodeNotFound
	}
	target, ok := w.Nodes[targetID]
	if !ok {
		return Path{}, ErrNodeNotFound
	}
	if sourceID == targetID {
		return Path{NodeIDs: []string{sourceID}}, nil
	}

	edges := adjacency(w, cost, ctx)

	open := &frontier{}
	heap.Init(open)
	seq := 0
	push := func(nodeID string, g, h float64) {
		heap.Push(open, &frontierItem{nodeID: nodeID, g: g, f: g + h, seq: seq})
		seq++
	}

	gScore := map[string]float64{sourceID: 0}
	cameFrom := map[string]string{}
	closed := map[string]bool{}
	push(sourceID, 0, manhattan(source.Position, target.Position))

	for open.Len() > 0 {
		current := heap.Pop(open).(*frontierItem)
		if closed[current.nodeID] {
			continue
		}
		if current.nodeID == targetID {
			return Path{NodeIDs: rebuild(cameFrom, sourceID, targetID), TotalCost: current.g}, nil
		}
		closed[current.nodeID] = true

		for _, e := range edges[current.nodeID] {
			if closed[e.to] {
				continue
			}
			tentative := current.g + e.cost
			if best, seen := gScore[e.to]; seen && tentative >= best {
				continue
			}
			gScore[e.to] = tentative
			cameFrom[e.to] = current.nodeID
			push(e.to, tentative, manhattan(w.Nodes[e.to].Position, target.Position))
		}
	}
	return Path{}, ErrNoPath
}

func rebuild(cameFrom map[string]string, sourceID, targetID string) []string {
	out := []string{targetID}
	for cur := targetID; cur != sourceID; {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		out = append(out, prev)
		cur = prev
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
