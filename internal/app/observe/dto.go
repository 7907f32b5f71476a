package observe

import "starweave/internal/domain/world"

type Request struct{}

// Response is the read-model of the current world snapshot, sorted for
// stable output across identical worlds.
type Response struct {
	WorldID     string           `json:"world_id"`
	CurrentTick int64            `json:"current_tick"`
	Speed       float64          `json:"speed"`
	IsPaused    bool             `json:"is_paused"`
	Nodes       []NodeView       `json:"nodes"`
	Connections []ConnectionView `json:"connections"`
	Relations   []RelationView   `json:"relations,omitempty"`
}

type NodeView struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Position         world.Position   `json:"position"`
	Status           world.NodeStatus `json:"status"`
	OwnerID          string           `json:"owner_id,omitempty"`
	ControlPoints    int              `json:"control_points"`
	MaxControlPoints int              `json:"max_control_points"`
	Resources        []world.Resource `json:"resources,omitempty"`
}

type ConnectionView struct {
	ID                string               `json:"id"`
	FromNodeID        string               `json:"from_node_id"`
	ToNodeID          string               `json:"to_node_id"`
	Type              world.ConnectionType `json:"type"`
	TravelCost        float64              `json:"travel_cost"`
	IsActive          bool                 `json:"is_active"`
	CooldownRemaining int64                `json:"cooldown_remaining,omitempty"`
}

type RelationView struct {
	Key             string               `json:"key"`
	Status          world.RelationStatus `json:"status"`
	EstablishedTick int64                `json:"established_tick"`
}
