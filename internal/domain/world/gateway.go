package world

// ActivateGateway pays the gateway's activation cost out of the node's
// stockpile and starts the cooldown. When the connection is not an active,
// idle gateway, or the node cannot afford the cost, the world is returned
// unchanged and ok is false.
func ActivateGateway(w GameWorld, nodeID, connID string, tick int64) (GameWorld, GameEvent, bool) {
	conn, ok := w.Connections[connID]
	if !ok || conn.Type != ConnectionGateway || !conn.IsActive || conn.IsCoolingDown() {
		return w, GameEvent{}, false
	}
	node, ok := w.Nodes[nodeID]
	if !ok {
		return w, GameEvent{}, false
	}
	if _, endpoint := conn.Other(nodeID); !endpoint {
		return w, GameEvent{}, false
	}

	cost := conn.ActivationCost
	if cost.Amount > 0 {
		stock, ok := node.Resource(cost.Type)
		if !ok || stock.Quantity < cost.Amount {
			return w, GameEvent{}, false
		}
		stock.Quantity -= cost.Amount
		node = node.WithResource(stock)
	}

	out := w.Clone()
	out.Nodes[node.ID] = node
	conn.CooldownRemaining = conn.CooldownTicks
	out.Connections[conn.ID] = conn

	return out, GameEvent{
		Type:     EventGatewayActivated,
		Tick:     tick,
		EntityID: conn.ID,
		Payload: GatewayPayload{
			ConnectionID: conn.ID,
			ReadyAtTick:  tick + conn.CooldownTicks,
			CostPaid:     cost.Amount,
		},
	}, true
}

// TickGatewayCooldowns advances every cooling gateway by one tick. A gateway
// whose countdown reaches zero this tick emits its expiry events exactly
// once; an already idle gateway emits nothing.
func TickGatewayCooldowns(w GameWorld, tick int64) (GameWorld, []GameEvent) {
	var expired []string
	changed := false
	for _, id := range w.SortedConnectionIDs() {
		c := w.Connections[id]
		if c.Type != ConnectionGateway || c.CooldownRemaining <= 0 {
			continue
		}
		changed = true
		if c.CooldownRemaining == 1 {
			expired = append(expired, id)
		}
	}
	if !changed {
		return w, nil
	}

	out := w.Clone()
	events := make([]GameEvent, 0, len(expired)*2)
	for _, id := range out.SortedConnectionIDs() {
		c := out.Connections[id]
		if c.Type != ConnectionGateway || c.CooldownRemaining <= 0 {
			continue
		}
		c.CooldownRemaining--
		out.Connections[id] = c
		if c.CooldownRemaining == 0 {
			payload := GatewayPayload{ConnectionID: id, ReadyAtTick: tick}
			events = append(events,
				GameEvent{Type: EventGatewayCooldownExpired, Tick: tick, EntityID: id, Payload: payload},
				GameEvent{Type: EventGatewayReady, Tick: tick, EntityID: id, Payload: payload},
			)
		}
	}
	return out, events
}
