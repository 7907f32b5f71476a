// Package replay reads back the persisted event stream of a world, oldest
// first, optionally bounded by a tick window.
package replay

import (
	"context"
	"errors"
	"strings"

	"starweave/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultLimit = 200

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	worldID := strings.TrimSpace(req.WorldID)
	if worldID == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.FromTick < 0 || (req.ToTick > 0 && req.ToTick < req.FromTick) {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	events, err := u.Events.ListByWorld(ctx, worldID, limit, req.FromTick, req.ToTick)
	if err != nil {
		return Response{}, err
	}
	return Response{WorldID: worldID, Events: events}, nil
}
