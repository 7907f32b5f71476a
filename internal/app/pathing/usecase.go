// Package pathing answers route and reachability queries against the live
// world snapshot.
package pathing

import (
	"context"
	"errors"
	"sort"
	"strings"

	"starweave/internal/domain/graph"
	"starweave/internal/runtime"
)

var ErrInvalidRequest = errors.New("invalid pathing request")

type UseCase struct {
	Loop *runtime.Loop
}

func (u UseCase) FindPath(_ context.Context, req PathRequest) (PathResponse, error) {
	sourceID := strings.TrimSpace(req.SourceID)
	targetID := strings.TrimSpace(req.TargetID)
	if sourceID == "" || targetID == "" {
		return PathResponse{}, ErrInvalidRequest
	}

	w := u.Loop.Snapshot()
	path, err := graph.FindPath(w, sourceID, targetID, nil, graph.Context{Funds: req.Funds})
	if err != nil {
		return PathResponse{}, err
	}
	return PathResponse{
		NodeIDs:   path.NodeIDs,
		TotalCost: path.TotalCost,
		Hops:      len(path.NodeIDs) - 1,
	}, nil
}

func (u UseCase) Reachable(_ context.Context, req ReachableRequest) (ReachableResponse, error) {
	sourceID := strings.TrimSpace(req.SourceID)
	if sourceID == "" || req.CostBudget < 0 {
		return ReachableResponse{}, ErrInvalidRequest
	}

	w := u.Loop.Snapshot()
	dist, err := graph.ReachableNodes(w, sourceID, req.CostBudget, nil, graph.Context{Funds: req.Funds})
	if err != nil {
		return ReachableResponse{}, err
	}

	resp := ReachableResponse{SourceID: sourceID, Nodes: make([]ReachableNode, 0, len(dist))}
	for id, cost := range dist {
		resp.Nodes = append(resp.Nodes, ReachableNode{NodeID: id, Cost: cost})
	}
	sort.Slice(resp.Nodes, func(i, j int) bool {
		if resp.Nodes[i].Cost != resp.Nodes[j].Cost {
			return resp.Nodes[i].Cost < resp.Nodes[j].Cost
		}
		return resp.Nodes[i].NodeID < resp.Nodes[j].NodeID
	})
	return resp, nil
}
