package memory

import (
	"context"
	"errors"
	"testing"

	"starweave/internal/app/ports"
	"starweave/internal/domain/world"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	w := world.NewWorld("w1")
	w.CurrentTick = 5
	if err := s.SaveSnapshot(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}
	w.CurrentTick = 9
	if err := s.SaveSnapshot(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadSnapshot(ctx, "w1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentTick != 9 {
		t.Fatalf("loaded tick = %d, want latest 9", got.CurrentTick)
	}

	if _, err := s.LoadSnapshot(ctx, "ghost"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("missing world err = %v, want ports.ErrNotFound", err)
	}
}

func TestSnapshotIsIsolatedFromCaller(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	w := world.NewWorld("w1")
	w, _ = w.AddNode(world.NewNode("a", "", world.Position{}, 10), 0)
	if err := s.SaveSnapshot(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}

	n := w.Nodes["a"]
	n.OwnerID = "p1"
	w.Nodes["a"] = n

	got, err := s.LoadSnapshot(ctx, "w1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Nodes["a"].OwnerID != "" {
		t.Fatal("stored snapshot mutated through the caller's world")
	}
}

func TestEventWindowing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var batch []world.GameEvent
	for tick := int64(1); tick <= 6; tick++ {
		batch = append(batch, world.GameEvent{Type: world.EventTickProcessed, Tick: tick})
	}
	if err := s.Append(ctx, "w1", batch); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.ListByWorld(ctx, "w1", 0, 2, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 4 || got[0].Tick != 2 || got[3].Tick != 5 {
		t.Fatalf("window = %+v", got)
	}

	got, err = s.ListByWorld(ctx, "w1", 3, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[2].Tick != 3 {
		t.Fatalf("limited = %+v", got)
	}

	got, err = s.ListByWorld(ctx, "other", 0, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("foreign world returned %d events", len(got))
	}
}
