package observe

import (
	"context"
	"sort"

	"starweave/internal/runtime"
)

type UseCase struct {
	Loop *runtime.Loop
}

func (u UseCase) Execute(_ context.Context, _ Request) (Response, error) {
	w := u.Loop.Snapshot()

	resp := Response{
		WorldID:     w.ID,
		CurrentTick: w.CurrentTick,
		Speed:       w.Speed,
		IsPaused:    w.IsPaused,
		Nodes:       make([]NodeView, 0, len(w.Nodes)),
		Connections: make([]ConnectionView, 0, len(w.Connections)),
	}

	for _, id := range w.SortedNodeIDs() {
		n := w.Nodes[id]
		resp.Nodes = append(resp.Nodes, NodeView{
			ID:               n.ID,
			Name:             n.Name,
			Position:         n.Position,
			Status:           n.Status,
			OwnerID:          n.OwnerID,
			ControlPoints:    n.ControlPoints,
			MaxControlPoints: n.MaxControlPoints,
			Resources:        n.Resources,
		})
	}
	for _, id := range w.SortedConnectionIDs() {
		c := w.Connections[id]
		resp.Connections = append(resp.Connections, ConnectionView{
			ID:                c.ID,
			FromNodeID:        c.FromNodeID,
			ToNodeID:          c.ToNodeID,
			Type:              c.Type,
			TravelCost:        c.TravelCost,
			IsActive:          c.IsActive,
			CooldownRemaining: c.CooldownRemaining,
		})
	}

	keys := make([]string, 0, len(w.Relations))
	for k := range w.Relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r := w.Relations[k]
		resp.Relations = append(resp.Relations, RelationView{
			Key:             k,
			Status:          r.Status,
			EstablishedTick: r.EstablishedTick,
		})
	}
	return resp, nil
}
