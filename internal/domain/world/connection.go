package world

type ConnectionType string

const (
	ConnectionDirect  ConnectionType = "direct"
	ConnectionGateway ConnectionType = "gateway"
)

// ResourceCost names an amount of one resource type, used for gateway
// activation.
type ResourceCost struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

// Connection is a traversable edge between two nodes. Traversal is checked
// in both directions; the from/to pair only fixes the edge's identity.
// Gateway connections additionally carry an activation cost and a cooldown
// measured in ticks.
type Connection struct {
	ID         string         `json:"id"`
	FromNodeID string         `json:"from_node_id"`
	ToNodeID   string         `json:"to_node_id"`
	Type       ConnectionType `json:"type"`
	TravelCost float64        `json:"travel_cost"`
	IsActive   bool           `json:"is_active"`

	ActivationCost    ResourceCost `json:"activation_cost,omitempty"`
	CooldownTicks     int64        `json:"cooldown_ticks,omitempty"`
	CooldownRemaining int64        `json:"cooldown_remaining,omitempty"`
}

// NewConnection builds an active direct connection.
func NewConnection(id, from, to string, travelCost float64) Connection {
	return Connection{
		ID:         id,
		FromNodeID: from,
		ToNodeID:   to,
		Type:       ConnectionDirect,
		TravelCost: travelCost,
		IsActive:   true,
	}
}

// NewGateway builds an active gateway connection with the given activation
// cost and cooldown duration.
func NewGateway(id, from, to string, travelCost float64, cost ResourceCost, cooldownTicks int64) Connection {
	c := NewConnection(id, from, to, travelCost)
	c.Type = ConnectionGateway
	c.ActivationCost = cost
	c.CooldownTicks = cooldownTicks
	return c
}

// Other returns the opposite endpoint of the edge, and false when the given
// node is not an endpoint at all.
func (c Connection) Other(nodeID string) (string, bool) {
	switch nodeID {
	case c.FromNodeID:
		return c.ToNodeID, true
	case c.ToNodeID:
		return c.FromNodeID, true
	}
	return "", false
}

// IsCoolingDown reports whether a gateway is still on cooldown.
func (c Connection) IsCoolingDown() bool {
	return c.Type == ConnectionGateway && c.CooldownRemaining > 0
}
