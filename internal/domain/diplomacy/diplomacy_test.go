package diplomacy

import (
	"testing"

	"starweave/internal/domain/world"
)

// diploWorld gives p1 and p2 one claimed node each so war declarations are
// legal by default.
func diploWorld() world.GameWorld {
	w := world.NewWorld("d")
	for i, owner := range []string{"p1", "p2"} {
		n := world.NewNode(string(rune('a'+i)), "", world.Position{X: i}, 100)
		n.Status = world.StatusClaimed
		n.OwnerID = owner
		n.ControlPoints = 100
		w, _ = w.AddNode(n, 0)
	}
	return w
}

func TestOfferAndAcceptAlliance(t *testing.T) {
	var svc Service
	w := diploWorld()

	w, events := svc.OfferAlliance(w, "p1", "p2", 1)
	if len(events) != 1 || events[0].Type != world.EventAllianceOffered {
		t.Fatalf("offer events = %+v", events)
	}

	// Duplicate offer is a no-op.
	if _, dup := svc.OfferAlliance(w, "p1", "p2", 2); len(dup) != 0 {
		t.Fatalf("duplicate offer emitted %d events", len(dup))
	}

	// The offerer cannot accept their own offer.
	if _, self := svc.AcceptAlliance(w, "p1", "p2", 3); len(self) != 0 {
		t.Fatalf("offerer accepted own offer: %d events", len(self))
	}

	w, events = svc.AcceptAlliance(w, "p2", "p1", 3)
	if len(events) != 1 || events[0].Type != world.EventAllianceFormed {
		t.Fatalf("accept events = %+v", events)
	}
	rel := w.Relation("p1", "p2")
	if rel.Status != world.RelationAllied || rel.EstablishedTick != 3 {
		t.Fatalf("relation = %+v", rel)
	}
	if len(w.Offers) != 0 {
		t.Fatal("accepted offer not consumed")
	}

	// Offering to an existing ally is a no-op.
	if _, again := svc.OfferAlliance(w, "p2", "p1", 4); len(again) != 0 {
		t.Fatalf("offer to ally emitted %d events", len(again))
	}
}

func TestRejectAllianceEmitsEventPeaceRejectionSilent(t *testing.T) {
	var svc Service
	w := diploWorld()

	w, _ = svc.OfferAlliance(w, "p1", "p2", 1)
	w, events := svc.RejectOffer(w, "p2", "p1", world.OfferAlliance, 2)
	if len(events) != 1 || events[0].Type != world.EventAllianceRejected {
		t.Fatalf("alliance rejection events = %+v", events)
	}
	if len(w.Offers) != 0 {
		t.Fatal("rejected offer not cleared")
	}

	w, _ = svc.DeclareWar(w, "p1", "p2", 3)
	w, _ = svc.ProposePeace(w, "p2", "p1", 4)
	w, events = svc.RejectOffer(w, "p1", "p2", world.OfferPeace, 5)
	if len(events) != 0 {
		t.Fatalf("peace rejection must stay silent, got %+v", events)
	}
	if w.Relation("p1", "p2").Status != world.RelationWar {
		t.Fatal("war must keep standing after a rejected peace offer")
	}
}

func TestDeclareWarRequiresTerritory(t *testing.T) {
	var svc Service
	w := diploWorld()

	if _, events := svc.DeclareWar(w, "p1", "landless", 1); len(events) != 0 {
		t.Fatalf("war against landless player emitted %d events", len(events))
	}
	if _, events := svc.DeclareWar(w, "landless", "p1", 1); len(events) != 0 {
		t.Fatalf("landless declarer emitted %d events", len(events))
	}

	w, events := svc.DeclareWar(w, "p1", "p2", 2)
	if len(events) != 1 || events[0].Type != world.EventWarDeclared {
		t.Fatalf("war events = %+v", events)
	}
	if w.Relation("p2", "p1").Status != world.RelationWar {
		t.Fatal("relation not set to war")
	}

	// Redeclaring is a no-op.
	if _, again := svc.DeclareWar(w, "p2", "p1", 3); len(again) != 0 {
		t.Fatalf("duplicate war emitted %d events", len(again))
	}
}

func TestDeclareWarVoidsPendingOffers(t *testing.T) {
	var svc Service
	w := diploWorld()

	w, _ = svc.OfferAlliance(w, "p1", "p2", 1)
	w, _ = svc.DeclareWar(w, "p2", "p1", 2)
	if len(w.Offers) != 0 {
		t.Fatalf("pending offers after war declaration: %d", len(w.Offers))
	}
}

func TestPeaceLifecycle(t *testing.T) {
	var svc Service
	w := diploWorld()

	// Peace without a war is a no-op.
	if _, events := svc.ProposePeace(w, "p1", "p2", 1); len(events) != 0 {
		t.Fatalf("peace proposal outside war emitted %d events", len(events))
	}

	w, _ = svc.DeclareWar(w, "p1", "p2", 2)
	w, events := svc.ProposePeace(w, "p1", "p2", 3)
	if len(events) != 1 || events[0].Type != world.EventPeaceProposed {
		t.Fatalf("proposal events = %+v", events)
	}

	// Only the recipient can accept.
	if _, self := svc.AcceptPeace(w, "p1", "p2", 4); len(self) != 0 {
		t.Fatalf("proposer accepted own peace: %d events", len(self))
	}

	w, events = svc.AcceptPeace(w, "p2", "p1", 4)
	if len(events) != 1 || events[0].Type != world.EventPeaceMade {
		t.Fatalf("accept events = %+v", events)
	}
	rel := w.Relation("p1", "p2")
	if rel.Status != world.RelationNeutral || rel.EstablishedTick != 4 {
		t.Fatalf("relation after peace = %+v", rel)
	}
}

func TestInvalidPairsAreNoOps(t *testing.T) {
	var svc Service
	w := diploWorld()

	if _, events := svc.OfferAlliance(w, "p1", "p1", 1); len(events) != 0 {
		t.Fatal("self offer accepted")
	}
	if _, events := svc.OfferAlliance(w, "", "p2", 1); len(events) != 0 {
		t.Fatal("empty player accepted")
	}
}
