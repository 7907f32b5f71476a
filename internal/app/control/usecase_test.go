package control

import (
	"context"
	"errors"
	"testing"
	"time"

	"starweave/internal/app/ports"
	"starweave/internal/domain/engine"
	"starweave/internal/domain/territory"
	"starweave/internal/domain/world"
	"starweave/internal/runtime"
)

type fakeWorldRepo struct {
	saved  []world.GameWorld
	loaded world.GameWorld
	err    error
}

func (f *fakeWorldRepo) SaveSnapshot(_ context.Context, w world.GameWorld) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, w)
	return nil
}

func (f *fakeWorldRepo) LoadSnapshot(_ context.Context, worldID string) (world.GameWorld, error) {
	if f.err != nil {
		return world.GameWorld{}, f.err
	}
	return f.loaded, nil
}

func newControlLoop() *runtime.Loop {
	w := world.NewWorld("c")
	w, _ = w.AddNode(world.NewNode("a", "Alpha", world.Position{}, 100), 0)
	return runtime.NewLoop(w, runtime.Config{
		BaseTickRate: time.Second,
		Engine:       engine.DefaultConfig(),
		Territory:    territory.DefaultPolicy(),
	})
}

func TestPauseResumeSpeed(t *testing.T) {
	uc := UseCase{Loop: newControlLoop()}
	ctx := context.Background()

	resp, err := uc.Execute(ctx, Request{Command: CommandPause})
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !resp.IsPaused {
		t.Fatal("world not paused")
	}

	resp, err = uc.Execute(ctx, Request{Command: CommandResume})
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resp.IsPaused {
		t.Fatal("world still paused")
	}

	resp, err = uc.Execute(ctx, Request{Command: CommandSpeed, Speed: 2.5})
	if err != nil {
		t.Fatalf("speed: %v", err)
	}
	if resp.Speed != 2.5 {
		t.Fatalf("speed = %v, want 2.5", resp.Speed)
	}
	if _, err := uc.Execute(ctx, Request{Command: CommandSpeed, Speed: -1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("negative speed err = %v, want ErrInvalidRequest", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	repo := &fakeWorldRepo{}
	loop := newControlLoop()
	uc := UseCase{Loop: loop, Worlds: repo}
	ctx := context.Background()

	if _, err := uc.Execute(ctx, Request{Command: CommandSave}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != "c" {
		t.Fatalf("saved = %+v", repo.saved)
	}

	restored := world.NewWorld("c")
	restored.CurrentTick = 99
	repo.loaded = restored
	resp, err := uc.Execute(ctx, Request{Command: CommandLoad, WorldID: "c"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resp.CurrentTick != 99 {
		t.Fatalf("tick after load = %d, want 99", resp.CurrentTick)
	}

	if _, err := uc.Execute(ctx, Request{Command: CommandLoad}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("load without world id err = %v, want ErrInvalidRequest", err)
	}
}

func TestSaveWithoutRepository(t *testing.T) {
	uc := UseCase{Loop: newControlLoop()}
	if _, err := uc.Execute(context.Background(), Request{Command: CommandSave}); !errors.Is(err, ErrNoRepository) {
		t.Fatalf("err = %v, want ErrNoRepository", err)
	}
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	repo := &fakeWorldRepo{err: ports.ErrNotFound}
	uc := UseCase{Loop: newControlLoop(), Worlds: repo}
	if _, err := uc.Execute(context.Background(), Request{Command: CommandLoad, WorldID: "ghost"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ports.ErrNotFound", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	uc := UseCase{Loop: newControlLoop()}
	if _, err := uc.Execute(context.Background(), Request{Command: "explode"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestStartStop(t *testing.T) {
	uc := UseCase{Loop: newControlLoop()}
	ctx := context.Background()

	resp, err := uc.Execute(ctx, Request{Command: CommandStart})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.IsPaused {
		t.Fatal("start must unpause")
	}

	resp, err = uc.Execute(ctx, Request{Command: CommandStop})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !resp.IsPaused {
		t.Fatal("stop must pause")
	}
}
