// Package diplomacy implements the bilateral relation state machine:
// Neutral -> offer -> Allied, Allied|Neutral -> War (unilateral), and
// War -> offer -> Neutral. All transitions validate first and are no-ops on
// failure: callers detect "nothing happened" by the absence of events, not
// by catching errors.
package diplomacy

import "starweave/internal/domain/world"

type Service struct{}

func offerKey(a, b string, kind world.OfferKind) string {
	return world.RelationKey(a, b) + ":" + string(kind)
}

func validPair(from, to string) bool {
	return from != "" && to != "" && from != to
}

// OfferAlliance records a pending alliance offer. It fails when the pair is
// already allied or an alliance offer for the pair is already outstanding.
func (Service) OfferAlliance(w world.GameWorld, from, to string, tick int64) (world.GameWorld, []world.GameEvent) {
	if !validPair(from, to) {
		return w, nil
	}
	if w.Relation(from, to).Status == world.RelationAllied {
		return w, nil
	}
	key := offerKey(from, to, world.OfferAlliance)
	if _, exists := w.Offers[key]; exists {
		return w, nil
	}

	out := w.Clone()
	out.Offers[key] = world.PendingOffer{FromPlayerID: from, ToPlayerID: to, Kind: world.OfferAlliance, Tick: tick}
	return out, []world.GameEvent{{
		Type:     world.EventAllianceOffered,
		Tick:     tick,
		EntityID: world.RelationKey(from, to),
		Payload:  world.DiplomacyPayload{FromPlayerID: from, ToPlayerID: to},
	}}
}

// AcceptAlliance lets the offer's recipient form the alliance. The pending
// entry is consumed and the relation becomes Allied at this tick.
func (Service) AcceptAlliance(w world.GameWorld, accepter, other string, tick int64) (world.GameWorld, []world.GameEvent) {
	if !validPair(accepter, other) {
		return w, nil
	}
	key := offerKey(accepter, other, world.OfferAlliance)
	offer, exists := w.Offers[key]
	if !exists || offer.ToPlayerID != accepter {
		return w, nil
	}

	out := w.Clone()
	delete(out.Offers, key)
	out.Relations[world.RelationKey(accepter, other)] = world.Relation{
		Status:          world.RelationAllied,
		EstablishedTick: tick,
	}
	return out, []world.GameEvent{{
		Type:     world.EventAllianceFormed,
		Tick:     tick,
		EntityID: world.RelationKey(accepter, other),
		Payload:  world.DiplomacyPayload{FromPlayerID: offer.FromPlayerID, ToPlayerID: offer.ToPlayerID},
	}}
}

// RejectOffer clears a pending offer of the given kind, returning the
// relation to its pre-offer state. Only the recipient can reject. Alliance
// rejections are surfaced to observers; a rejected peace offer simply leaves
// the war standing.
func (Service) RejectOffer(w world.GameWorld, rejecter, other string, kind world.OfferKind, tick int64) (world.GameWorld, []world.GameEvent) {
	if !validPair(rejecter, other) {
		return w, nil
	}
	key := offerKey(rejecter, other, kind)
	offer, exists := w.Offers[key]
	if !exists || offer.ToPlayerID != rejecter {
		return w, nil
	}

	out := w.Clone()
	delete(out.Offers, key)
	if kind != world.OfferAlliance {
		return out, nil
	}
	return out, []world.GameEvent{{
		Type:     world.EventAllianceRejected,
		Tick:     tick,
		EntityID: world.RelationKey(rejecter, other),
		Payload:  world.DiplomacyPayload{FromPlayerID: offer.FromPlayerID, ToPlayerID: offer.ToPlayerID},
	}}
}

// DeclareWar is unilateral and immediate, but requires both parties to hold
// at least one node; landless players cannot start or receive wars. Any
// pending offers between the pair are voided.
func (Service) DeclareWar(w world.GameWorld, from, to string, tick int64) (world.GameWorld, []world.GameEvent) {
	if !validPair(from, to) {
		return w, nil
	}
	if !w.PlayerOwnsAnyNode(from) || !w.PlayerOwnsAnyNode(to) {
		return w, nil
	}
	if w.Relation(from, to).Status == world.RelationWar {
		return w, nil
	}

	out := w.Clone()
	delete(out.Offers, offerKey(from, to, world.OfferAlliance))
	delete(out.Offers, offerKey(from, to, world.OfferPeace))
	out.Relations[world.RelationKey(from, to)] = world.Relation{
		Status:          world.RelationWar,
		EstablishedTick: tick,
	}
	return out, []world.GameEvent{{
		Type:     world.EventWarDeclared,
		Tick:     tick,
		EntityID: world.RelationKey(from, to),
		Payload:  world.DiplomacyPayload{FromPlayerID: from, ToPlayerID: to},
	}}
}

// ProposePeace records a pending peace offer. It requires an existing War
// relation and no outstanding peace offer for the pair.
func (Service) ProposePeace(w world.GameWorld, from, to string, tick int64) (world.GameWorld, []world.GameEvent) {
	if !validPair(from, to) {
		return w, nil
	}
	if w.Relation(from, to).Status != world.RelationWar {
		return w, nil
	}
	key := offerKey(from, to, world.OfferPeace)
	if _, exists := w.Offers[key]; exists {
		return w, nil
	}

	out := w.Clone()
	out.Offers[key] = world.PendingOffer{FromPlayerID: from, ToPlayerID: to, Kind: world.OfferPeace, Tick: tick}
	return out, []world.GameEvent{{
		Type:     world.EventPeaceProposed,
		Tick:     tick,
		EntityID: world.RelationKey(from, to),
		Payload:  world.DiplomacyPayload{FromPlayerID: from, ToPlayerID: to},
	}}
}

// AcceptPeace ends the war, returning the relation to Neutral. It fails when
// the relation is not currently War or no peace offer is pending for the
// accepter.
func (Service) AcceptPeace(w world.GameWorld, accepter, other string, tick int64) (world.GameWorld, []world.GameEvent) {
	if !validPair(accepter, other) {
		return w, nil
	}
	if w.Relation(accepter, other).Status != world.RelationWar {
		return w, nil
	}
	key := offerKey(accepter, other, world.OfferPeace)
	offer, exists := w.Offers[key]
	if !exists || offer.ToPlayerID != accepter {
		return w, nil
	}

	out := w.Clone()
	delete(out.Offers, key)
	out.Relations[world.RelationKey(accepter, other)] = world.Relation{
		Status:          world.RelationNeutral,
		EstablishedTick: tick,
	}
	return out, []world.GameEvent{{
		Type:     world.EventPeaceMade,
		Tick:     tick,
		EntityID: world.RelationKey(accepter, other),
		Payload:  world.DiplomacyPayload{FromPlayerID: offer.FromPlayerID, ToPlayerID: offer.ToPlayerID},
	}}
}
