package world

import "sort"

// GameWorld is the root aggregate. Every component receives a world by value
// and returns a new world by value; nothing mutates a world it did not
// construct itself, which is what makes prior snapshots safe for concurrent
// readers.
type GameWorld struct {
	ID          string                  `json:"id"`
	CurrentTick int64                   `json:"current_tick"`
	Speed       float64                 `json:"speed"`
	IsPaused    bool                    `json:"is_paused"`
	Nodes       map[string]Node         `json:"nodes"`
	Connections map[string]Connection   `json:"connections"`
	Relations   map[string]Relation     `json:"relations,omitempty"`
	Offers      map[string]PendingOffer `json:"offers,omitempty"`
	EventQueue  []GameEvent             `json:"event_queue,omitempty"`
}

// NewWorld builds an empty, unpaused world at tick zero.
func NewWorld(id string) GameWorld {
	return GameWorld{
		ID:          id,
		Speed:       1,
		Nodes:       map[string]Node{},
		Connections: map[string]Connection{},
		Relations:   map[string]Relation{},
		Offers:      map[string]PendingOffer{},
	}
}

// Clone deep-copies the world. The copy shares nothing with the original.
func (w GameWorld) Clone() GameWorld {
	out := w
	out.Nodes = make(map[string]Node, len(w.Nodes))
	for id, n := range w.Nodes {
		out.Nodes[id] = n.Clone()
	}
	out.Connections = make(map[string]Connection, len(w.Connections))
	for id, c := range w.Connections {
		out.Connections[id] = c
	}
	out.Relations = make(map[string]Relation, len(w.Relations))
	for k, r := range w.Relations {
		out.Relations[k] = r
	}
	out.Offers = make(map[string]PendingOffer, len(w.Offers))
	for k, o := range w.Offers {
		out.Offers[k] = o
	}
	if w.EventQueue != nil {
		out.EventQueue = append([]GameEvent(nil), w.EventQueue...)
	}
	return out
}

// Node looks up a node by id.
func (w GameWorld) Node(id string) (Node, bool) {
	n, ok := w.Nodes[id]
	return n, ok
}

// Connection looks up a connection by id.
func (w GameWorld) Connection(id string) (Connection, bool) {
	c, ok := w.Connections[id]
	return c, ok
}

// Relation returns the diplomatic relation for a player pair. A missing
// entry reads as Neutral.
func (w GameWorld) Relation(a, b string) Relation {
	if r, ok := w.Relations[RelationKey(a, b)]; ok {
		return r
	}
	return Relation{Status: RelationNeutral}
}

// SortedNodeIDs returns node ids in lexicographic order. Tick processing
// iterates in this order so identical worlds produce identical event
// sequences.
func (w GameWorld) SortedNodeIDs() []string {
	ids := make([]string, 0, len(w.Nodes))
	for id := range w.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedConnectionIDs returns connection ids in lexicographic order.
func (w GameWorld) SortedConnectionIDs() []string {
	ids := make([]string, 0, len(w.Connections))
	for id := range w.Connections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlayerOwnsAnyNode reports whether the player currently owns at least one
// claimed node.
func (w GameWorld) PlayerOwnsAnyNode(playerID string) bool {
	for _, n := range w.Nodes {
		if n.Status == StatusClaimed && n.OwnerID == playerID {
			return true
		}
	}
	return false
}

// AddNode is an administrative operation: it inserts the node and reports it
// to observers as discovered. It is not a tick effect.
func (w GameWorld) AddNode(n Node, tick int64) (GameWorld, GameEvent) {
	out := w.Clone()
	out.Nodes[n.ID] = n.Clone()
	return out, GameEvent{
		Type:     EventNodeDiscovered,
		Tick:     tick,
		EntityID: n.ID,
		Payload:  TerritoryPayload{ControlPoints: n.ControlPoints},
	}
}

// AddConnection wires an edge between two existing, distinct nodes and
// registers it on both endpoints. It returns the world unchanged when the
// edge is malformed.
func (w GameWorld) AddConnection(c Connection, tick int64) (GameWorld, GameEvent, bool) {
	if c.FromNodeID == c.ToNodeID {
		return w, GameEvent{}, false
	}
	from, okFrom := w.Nodes[c.FromNodeID]
	to, okTo := w.Nodes[c.ToNodeID]
	if !okFrom || !okTo {
		return w, GameEvent{}, false
	}

	out := w.Clone()
	out.Connections[c.ID] = c
	fromCopy := from.Clone()
	fromCopy.ConnectionIDs = append(fromCopy.ConnectionIDs, c.ID)
	toCopy := to.Clone()
	toCopy.ConnectionIDs = append(toCopy.ConnectionIDs, c.ID)
	out.Nodes[fromCopy.ID] = fromCopy
	out.Nodes[toCopy.ID] = toCopy

	return out, GameEvent{
		Type:     EventConnectionEstablished,
		Tick:     tick,
		EntityID: c.ID,
		Payload:  ConnectionPayload{FromNodeID: c.FromNodeID, ToNodeID: c.ToNodeID},
	}, true
}

// RemoveConnection severs an edge and unregisters it from its endpoints.
func (w GameWorld) RemoveConnection(id string, tick int64) (GameWorld, GameEvent, bool) {
	c, ok := w.Connections[id]
	if !ok {
		return w, GameEvent{}, false
	}

	out := w.Clone()
	delete(out.Connections, id)
	for _, nodeID := range []string{c.FromNodeID, c.ToNodeID} {
		n, ok := out.Nodes[nodeID]
		if !ok {
			continue
		}
		kept := n.ConnectionIDs[:0]
		for _, connID := range n.ConnectionIDs {
			if connID != id {
				kept = append(kept, connID)
			}
		}
		n.ConnectionIDs = kept
		out.Nodes[nodeID] = n
	}

	return out, GameEvent{
		Type:     EventConnectionSevered,
		Tick:     tick,
		EntityID: id,
		Payload:  ConnectionPayload{FromNodeID: c.FromNodeID, ToNodeID: c.ToNodeID},
	}, true
}
