package world

type NodeStatus string

const (
	StatusNeutral   NodeStatus = "neutral"
	StatusClaimed   NodeStatus = "claimed"
	StatusContested NodeStatus = "contested"
)

// Position is the node's location on the strategic map, used by the
// pathfinding heuristic.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node is a location in the world graph. Status Claimed implies a non-empty
// OwnerID; ControlPoints stays within [0, MaxControlPoints].
type Node struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Position         Position   `json:"position"`
	Status           NodeStatus `json:"status"`
	OwnerID          string     `json:"owner_id,omitempty"`
	Resources        []Resource `json:"resources,omitempty"`
	ConnectionIDs    []string   `json:"connection_ids,omitempty"`
	ControlPoints    int        `json:"control_points"`
	MaxControlPoints int        `json:"max_control_points"`
}

// NewNode builds a neutral node with the given control capacity.
func NewNode(id, name string, pos Position, maxControl int) Node {
	return Node{
		ID:               id,
		Name:             name,
		Position:         pos,
		Status:           StatusNeutral,
		MaxControlPoints: maxControl,
	}
}

// Clone deep-copies the node so callers can mutate the copy freely.
func (n Node) Clone() Node {
	out := n
	if n.Resources != nil {
		out.Resources = append([]Resource(nil), n.Resources...)
	}
	if n.ConnectionIDs != nil {
		out.ConnectionIDs = append([]string(nil), n.ConnectionIDs...)
	}
	return out
}

// Resource looks up a stockpile by type.
func (n Node) Resource(resourceType string) (Resource, bool) {
	for _, r := range n.Resources {
		if r.Type == resourceType {
			return r, true
		}
	}
	return Resource{}, false
}

// WithResource returns a copy of the node with the stockpile of the same
// type replaced, or appended when the node did not carry it yet.
func (n Node) WithResource(r Resource) Node {
	out := n.Clone()
	for i, existing := range out.Resources {
		if existing.Type == r.Type {
			out.Resources[i] = r
			return out
		}
	}
	out.Resources = append(out.Resources, r)
	return out
}
