package ports

import (
	"context"

	"starweave/internal/domain/world"
)

// WorldRepository stores and loads whole-world snapshots. The core itself
// never persists; this is the optional collaborator at its boundary.
type WorldRepository interface {
	SaveSnapshot(ctx context.Context, w world.GameWorld) error
	LoadSnapshot(ctx context.Context, worldID string) (world.GameWorld, error)
}

// EventRepository appends processed tick events and reads them back for
// replay.
type EventRepository interface {
	Append(ctx context.Context, worldID string, events []world.GameEvent) error
	ListByWorld(ctx context.Context, worldID string, limit int, fromTick, toTick int64) ([]world.GameEvent, error)
}

// TxManager runs fn inside one storage transaction. Repositories called with
// the derived context join that transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
