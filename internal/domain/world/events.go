package world

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventResourceDepleted   EventType = "resource_depleted"
	EventResourceCapReached EventType = "resource_cap_reached"
	EventResourceProduced   EventType = "resource_produced"

	EventNodeClaimed    EventType = "node_claimed"
	EventNodeContested  EventType = "node_contested"
	EventNodeLost       EventType = "node_lost"
	EventNodeDiscovered EventType = "node_discovered"

	EventConnectionEstablished EventType = "connection_established"
	EventConnectionSevered     EventType = "connection_severed"

	EventGatewayActivated       EventType = "gateway_activated"
	EventGatewayReady           EventType = "gateway_ready"
	EventGatewayCooldownExpired EventType = "gateway_cooldown_expired"

	EventAllianceOffered  EventType = "alliance_offered"
	EventAllianceFormed   EventType = "alliance_formed"
	EventAllianceRejected EventType = "alliance_rejected"
	EventWarDeclared      EventType = "war_declared"
	EventPeaceProposed    EventType = "peace_proposed"
	EventPeaceMade        EventType = "peace_made"

	EventTickProcessed EventType = "tick_processed"
	EventsDropped      EventType = "events_dropped"
)

type EventCategory string

const (
	CategoryResource   EventCategory = "resource"
	CategoryNode       EventCategory = "node"
	CategoryConnection EventCategory = "connection"
	CategoryGateway    EventCategory = "gateway"
	CategoryDiplomacy  EventCategory = "diplomacy"
	CategorySystem     EventCategory = "system"
)

var eventCategories = map[EventType]EventCategory{
	EventResourceDepleted:   CategoryResource,
	EventResourceCapReached: CategoryResource,
	EventResourceProduced:   CategoryResource,

	EventNodeClaimed:    CategoryNode,
	EventNodeContested:  CategoryNode,
	EventNodeLost:       CategoryNode,
	EventNodeDiscovered: CategoryNode,

	EventConnectionEstablished: CategoryConnection,
	EventConnectionSevered:     CategoryConnection,

	EventGatewayActivated:       CategoryGateway,
	EventGatewayReady:           CategoryGateway,
	EventGatewayCooldownExpired: CategoryGateway,

	EventAllianceOffered:  CategoryDiplomacy,
	EventAllianceFormed:   CategoryDiplomacy,
	EventAllianceRejected: CategoryDiplomacy,
	EventWarDeclared:      CategoryDiplomacy,
	EventPeaceProposed:    CategoryDiplomacy,
	EventPeaceMade:        CategoryDiplomacy,

	EventTickProcessed: CategorySystem,
	EventsDropped:      CategorySystem,
}

// CategoryOf maps an event type to its dispatch category. Unknown types fall
// into the System category so a custom handler can still observe them.
func CategoryOf(t EventType) EventCategory {
	if c, ok := eventCategories[t]; ok {
		return c
	}
	return CategorySystem
}

// Payload is the typed data carried by an event. Each category has its own
// payload shape; only System events carry a free-form map.
type Payload interface {
	isEventPayload()
}

type ResourcePayload struct {
	ResourceType string `json:"resource_type"`
	Quantity     int    `json:"quantity"`
	Delta        int    `json:"delta,omitempty"`
}

type TerritoryPayload struct {
	PlayerID        string `json:"player_id,omitempty"`
	PreviousOwnerID string `json:"previous_owner_id,omitempty"`
	ControlPoints   int    `json:"control_points"`
}

type ConnectionPayload struct {
	FromNodeID string `json:"from_node_id"`
	ToNodeID   string `json:"to_node_id"`
}

type GatewayPayload struct {
	ConnectionID string `json:"connection_id"`
	ReadyAtTick  int64  `json:"ready_at_tick,omitempty"`
	CostPaid     int    `json:"cost_paid,omitempty"`
}

type DiplomacyPayload struct {
	FromPlayerID string `json:"from_player_id"`
	ToPlayerID   string `json:"to_player_id"`
}

type SystemPayload map[string]any

func (ResourcePayload) isEventPayload()   {}
func (TerritoryPayload) isEventPayload()  {}
func (ConnectionPayload) isEventPayload() {}
func (GatewayPayload) isEventPayload()    {}
func (DiplomacyPayload) isEventPayload()  {}
func (SystemPayload) isEventPayload()     {}

// GameEvent is the authoritative record of one thing that happened during a
// tick. Events are append-only within a tick and immutable once created.
type GameEvent struct {
	Type     EventType `json:"type"`
	Tick     int64     `json:"tick"`
	EntityID string    `json:"entity_id,omitempty"`
	Payload  Payload   `json:"data,omitempty"`
}

// Category is the dispatch category of the event's type.
func (e GameEvent) Category() EventCategory {
	return CategoryOf(e.Type)
}

type eventJSON struct {
	Type     EventType       `json:"type"`
	Tick     int64           `json:"tick"`
	EntityID string          `json:"entity_id,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

func (e GameEvent) MarshalJSON() ([]byte, error) {
	out := eventJSON{Type: e.Type, Tick: e.Tick, EntityID: e.EntityID}
	if e.Payload != nil {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		out.Data = b
	}
	return json.Marshal(out)
}

func (e *GameEvent) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Type
	e.Tick = raw.Tick
	e.EntityID = raw.EntityID
	p, err := DecodePayload(raw.Type, raw.Data)
	if err != nil {
		return err
	}
	e.Payload = p
	return nil
}

// DecodePayload decodes raw payload bytes into the typed payload for the
// given event type. Empty data decodes to a nil payload.
func DecodePayload(t EventType, data []byte) (Payload, error) {
	if len(data) == 0 {
		return nil, nil
	}
	switch CategoryOf(t) {
	case CategoryResource:
		var p ResourcePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	case CategoryNode:
		var p TerritoryPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	case CategoryConnection:
		var p ConnectionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	case CategoryGateway:
		var p GatewayPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	case CategoryDiplomacy:
		var p DiplomacyPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	default:
		var p SystemPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	}
}
