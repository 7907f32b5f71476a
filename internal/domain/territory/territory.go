// Package territory drives the per-node ownership state machine:
// Neutral <-> Contested <-> Claimed, accrued through control points.
package territory

import (
	"sort"

	"starweave/internal/domain/world"
)

// Policy holds the accrual tuning. DisconnectedMultiplier scales the
// contested decay against an owner the session layer has marked as
// disconnected; it changes nothing structurally about the algorithm.
type Policy struct {
	UncontestedGain        int
	ContestedDecay         int
	DisconnectedMultiplier int
}

func DefaultPolicy() Policy {
	return Policy{
		UncontestedGain:        10,
		ContestedDecay:         5,
		DisconnectedMultiplier: 2,
	}
}

// ClaimAction is a transient per-tick instruction from the boundary layer.
// It is consumed by exactly one tick and never stored in world state.
type ClaimAction struct {
	PlayerID string `json:"player_id"`
	NodeID   string `json:"node_id"`
	Tick     int64  `json:"tick"`
}

type Service struct {
	Policy Policy
}

func NewService(p Policy) Service {
	if p.UncontestedGain <= 0 {
		p.UncontestedGain = DefaultPolicy().UncontestedGain
	}
	if p.ContestedDecay <= 0 {
		p.ContestedDecay = DefaultPolicy().ContestedDecay
	}
	if p.DisconnectedMultiplier <= 0 {
		p.DisconnectedMultiplier = 1
	}
	return Service{Policy: p}
}

// ProcessClaims applies one tick of claim accrual. For every node with at
// least one active claim it decides contested vs uncontested, applies the
// control-point delta, and performs ownership transitions at the clamped
// bounds. Identical inputs always yield identical output: nodes are visited
// in sorted id order and events fire only on actual transitions.
func (s Service) ProcessClaims(w world.GameWorld, claims []ClaimAction, disconnected map[string]bool, tick int64) (world.GameWorld, []world.GameEvent) {
	if len(claims) == 0 {
		return w, nil
	}

	byNode := map[string][]ClaimAction{}
	for _, c := range claims {
		if c.PlayerID == "" || c.NodeID == "" {
			continue
		}
		if _, ok := w.Nodes[c.NodeID]; !ok {
			continue
		}
		byNode[c.NodeID] = append(byNode[c.NodeID], c)
	}
	if len(byNode) == 0 {
		return w, nil
	}

	nodeIDs := make([]string, 0, len(byNode))
	for id := range byNode {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	out := w.Clone()
	var events []world.GameEvent
	for _, nodeID := range nodeIDs {
		node := out.Nodes[nodeID]
		next, evs := s.applyNodeClaims(node, byNode[nodeID], disconnected, tick)
		out.Nodes[nodeID] = next
		events = append(events, evs...)
	}
	return out, events
}

func (s Service) applyNodeClaims(node world.Node, claims []ClaimAction, disconnected map[string]bool, tick int64) (world.Node, []world.GameEvent) {
	claimant, sole := soleClaimant(claims)
	uncontested := sole && (node.OwnerID == claimant || node.OwnerID == "")

	if uncontested {
		return s.applyGain(node, claimant, tick)
	}
	return s.applyContest(node, tick, disconnected[node.OwnerID])
}

func (s Service) applyGain(node world.Node, claimant string, tick int64) (world.Node, []world.GameEvent) {
	next := node.Clone()
	next.ControlPoints += s.Policy.UncontestedGain
	if next.ControlPoints < next.MaxControlPoints {
		return next, nil
	}
	next.ControlPoints = next.MaxControlPoints

	if next.Status == world.StatusClaimed {
		// Already owned: clamp only, no event.
		return next, nil
	}
	previous := next.OwnerID
	next.OwnerID = claimant
	next.Status = world.StatusClaimed
	return next, []world.GameEvent{{
		Type:     world.EventNodeClaimed,
		Tick:     tick,
		EntityID: next.ID,
		Payload: world.TerritoryPayload{
			PlayerID:        claimant,
			PreviousOwnerID: previous,
			ControlPoints:   next.ControlPoints,
		},
	}}
}

func (s Service) applyContest(node world.Node, tick int64, ownerDisconnected bool) (world.Node, []world.GameEvent) {
	if node.OwnerID == "" && node.ControlPoints <= 0 {
		// Stalemate over an unheld node: nothing to erode.
		return node, nil
	}

	next := node.Clone()
	var events []world.GameEvent

	if next.Status != world.StatusContested {
		next.Status = world.StatusContested
		events = append(events, world.GameEvent{
			Type:     world.EventNodeContested,
			Tick:     tick,
			EntityID: next.ID,
			Payload: world.TerritoryPayload{
				PlayerID:      next.OwnerID,
				ControlPoints: next.ControlPoints,
			},
		})
	}

	decay := s.Policy.ContestedDecay
	if ownerDisconnected {
		decay *= s.Policy.DisconnectedMultiplier
	}
	hadControl := next.ControlPoints > 0
	next.ControlPoints -= decay
	if next.ControlPoints > 0 {
		return next, events
	}
	next.ControlPoints = 0
	if !hadControl {
		return next, events
	}

	previous := next.OwnerID
	next.OwnerID = ""
	next.Status = world.StatusNeutral
	events = append(events, world.GameEvent{
		Type:     world.EventNodeLost,
		Tick:     tick,
		EntityID: next.ID,
		Payload: world.TerritoryPayload{
			PreviousOwnerID: previous,
			ControlPoints:   0,
		},
	})
	return next, events
}

func soleClaimant(claims []ClaimAction) (string, bool) {
	first := claims[0].PlayerID
	for _, c := range claims[1:] {
		if c.PlayerID != first {
			return "", false
		}
	}
	return first, true
}

// CanClaim is the boundary-layer predicate for validating a claim before it
// is submitted to a tick. Claiming a node you already fully control is
// rejected as a no-op.
func CanClaim(w world.GameWorld, playerID, nodeID string) bool {
	if playerID == "" {
		return false
	}
	node, ok := w.Nodes[nodeID]
	if !ok {
		return false
	}
	if node.OwnerID == playerID && node.ControlPoints >= node.MaxControlPoints {
		return false
	}
	return true
}

// Abandon resets a node to neutral with zero control. It is a pure helper
// for the boundary layer, not a tick effect.
func Abandon(w world.GameWorld, nodeID string) (world.GameWorld, bool) {
	node, ok := w.Nodes[nodeID]
	if !ok {
		return w, false
	}
	out := w.Clone()
	next := node.Clone()
	next.OwnerID = ""
	next.Status = world.StatusNeutral
	next.ControlPoints = 0
	out.Nodes[nodeID] = next
	return out, true
}
