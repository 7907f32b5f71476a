package runtime

import (
	"reflect"
	"testing"
	"time"

	"starweave/internal/domain/engine"
	"starweave/internal/domain/territory"
	"starweave/internal/domain/world"
)

func loopWorld() world.GameWorld {
	w := world.NewWorld("l")
	for i, id := range []string{"a", "b"} {
		n := world.NewNode(id, id, world.Position{X: i}, 30)
		w, _ = w.AddNode(n, 0)
	}
	w, _, _ = w.AddConnection(world.NewConnection("a-b", "a", "b", 1), 0)
	return w
}

func ownedLoopWorld() world.GameWorld {
	w := loopWorld()
	for id, owner := range map[string]string{"a": "p1", "b": "p2"} {
		n := w.Nodes[id]
		n.Status = world.StatusClaimed
		n.OwnerID = owner
		n.ControlPoints = 30
		w.Nodes[id] = n
	}
	return w
}

func newTestLoop(w world.GameWorld) *Loop {
	return NewLoop(w, Config{
		BaseTickRate: time.Second,
		Engine:       engine.DefaultConfig(),
		Territory:    territory.DefaultPolicy(),
		Seed:         7,
	})
}

func TestTickAdvancesAndNotifiesInOrder(t *testing.T) {
	l := newTestLoop(loopWorld())
	l.Resume()

	var order []string
	l.Subscribe(func(engine.Result) { order = append(order, "first") })
	l.Subscribe(func(engine.Result) { order = append(order, "second") })

	res := l.Tick()
	if res.ProcessedTick != 1 {
		t.Fatalf("processed tick = %d, want 1", res.ProcessedTick)
	}
	if !reflect.DeepEqual(order, []string{"first", "second"}) {
		t.Fatalf("notification order = %v", order)
	}
	if got := l.Snapshot().CurrentTick; got != 1 {
		t.Fatalf("snapshot tick = %d, want 1", got)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	l := newTestLoop(loopWorld())
	l.Resume()

	calls := 0
	unsubscribe := l.Subscribe(func(engine.Result) { calls++ })
	l.Tick()
	unsubscribe()
	l.Tick()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 after unsubscribe", calls)
	}
}

func TestPausedLoopDoesNotAdvance(t *testing.T) {
	l := newTestLoop(loopWorld())
	l.Pause()

	res := l.Tick()
	if res.ProcessedTick != 0 {
		t.Fatalf("paused tick advanced to %d", res.ProcessedTick)
	}

	l.Resume()
	if res := l.Tick(); res.ProcessedTick != 1 {
		t.Fatalf("resumed tick = %d, want 1", res.ProcessedTick)
	}
}

func TestSubmitClaimValidatesAndBuffers(t *testing.T) {
	l := newTestLoop(loopWorld())
	l.Resume()

	if l.SubmitClaim(territory.ClaimAction{PlayerID: "p1", NodeID: "ghost"}) {
		t.Fatal("claim on missing node accepted")
	}
	if !l.SubmitClaim(territory.ClaimAction{PlayerID: "p1", NodeID: "a"}) {
		t.Fatal("valid claim rejected")
	}

	res := l.Tick()
	if got := res.World.Nodes["a"].ControlPoints; got != 10 {
		t.Fatalf("control points = %d, want 10 after one claimed tick", got)
	}

	// The buffer drains: a second tick without new claims accrues nothing.
	res = l.Tick()
	if got := res.World.Nodes["a"].ControlPoints; got != 10 {
		t.Fatalf("control points = %d, want unchanged 10", got)
	}
}

func TestDiplomacyActionsApplyBeforeTheTick(t *testing.T) {
	l := newTestLoop(ownedLoopWorld())
	l.Resume()

	l.SubmitDiplomacy(DiplomaticAction{Kind: DiplomacyDeclareWar, FromPlayerID: "p1", ToPlayerID: "p2"})
	res := l.Tick()

	if got := res.World.Relation("p1", "p2").Status; got != world.RelationWar {
		t.Fatalf("relation = %s, want war", got)
	}
	if len(res.Events) == 0 || res.Events[0].Type != world.EventWarDeclared {
		t.Fatalf("war event must lead the tick's events, got %+v", res.Events)
	}
	if res.Events[0].Tick != 1 {
		t.Fatalf("war event tick = %d, want 1", res.Events[0].Tick)
	}
}

func TestMarkDisconnectedAcceleratesDecay(t *testing.T) {
	l := newTestLoop(ownedLoopWorld())
	l.Resume()
	l.MarkDisconnected("p1", true)

	l.SubmitClaim(territory.ClaimAction{PlayerID: "p2", NodeID: "a"})
	res := l.Tick()
	// Contested decay 5 doubles to 10 against the disconnected owner.
	if got := res.World.Nodes["a"].ControlPoints; got != 20 {
		t.Fatalf("control points = %d, want 20", got)
	}

	l.MarkDisconnected("p1", false)
	l.SubmitClaim(territory.ClaimAction{PlayerID: "p2", NodeID: "a"})
	res = l.Tick()
	if got := res.World.Nodes["a"].ControlPoints; got != 15 {
		t.Fatalf("control points = %d, want 15 after reconnect", got)
	}
}

func TestSetSpeedAdjustsInterval(t *testing.T) {
	l := newTestLoop(loopWorld())

	if got := l.interval(); got != time.Second {
		t.Fatalf("interval = %v, want 1s", got)
	}
	l.SetSpeed(4)
	if got := l.interval(); got != 250*time.Millisecond {
		t.Fatalf("interval = %v, want 250ms", got)
	}
	l.SetSpeed(0)
	if got := l.interval(); got != 250*time.Millisecond {
		t.Fatalf("interval = %v, non-positive speed must be ignored", got)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	l := newTestLoop(loopWorld())
	snap := l.Snapshot()
	n := snap.Nodes["a"]
	n.OwnerID = "intruder"
	snap.Nodes["a"] = n

	if got := l.Snapshot().Nodes["a"].OwnerID; got != "" {
		t.Fatalf("loop state mutated through snapshot: %q", got)
	}
}

func TestRestoreReplacesWorld(t *testing.T) {
	l := newTestLoop(loopWorld())
	saved := l.Snapshot()
	l.Resume()
	l.Tick()
	l.Tick()

	l.Restore(saved)
	if got := l.Snapshot().CurrentTick; got != 0 {
		t.Fatalf("tick after restore = %d, want 0", got)
	}
}

func TestHistoryRetainsProcessedEvents(t *testing.T) {
	l := newTestLoop(loopWorld())
	l.Resume()
	l.Tick()
	l.Tick()

	events := l.History()
	if len(events) != 2 {
		t.Fatalf("history = %d events, want the two tick markers", len(events))
	}
	if events[0].Tick != 1 || events[1].Tick != 2 {
		t.Fatalf("history ticks = %d, %d", events[0].Tick, events[1].Tick)
	}
}

func TestStartStopLifecycle(t *testing.T) {
	l := NewLoop(loopWorld(), Config{
		BaseTickRate: 5 * time.Millisecond,
		Engine:       engine.DefaultConfig(),
		Territory:    territory.DefaultPolicy(),
	})

	l.Start()
	deadline := time.Now().Add(2 * time.Second)
	for l.Snapshot().CurrentTick < 2 {
		if time.Now().After(deadline) {
			t.Fatal("loop did not tick within deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
	l.Stop()

	if !l.Snapshot().IsPaused {
		t.Fatal("stop must re-pause the world")
	}
	at := l.Snapshot().CurrentTick
	time.Sleep(30 * time.Millisecond)
	if got := l.Snapshot().CurrentTick; got != at {
		t.Fatalf("loop kept ticking after stop: %d -> %d", at, got)
	}
}

func TestRandDeterministicSequences(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 100; i++ {
		if a.Uint32() != b.Uint32() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}

	if NewRand(0).Uint32() == 0 {
		t.Fatal("zero seed must be remapped, xorshift cannot leave zero state")
	}

	r := NewRand(7)
	for i := 0; i < 100; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
		if n := r.Intn(10); n < 0 || n >= 10 {
			t.Fatalf("Intn out of range: %d", n)
		}
	}
}
