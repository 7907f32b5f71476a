package replay

import "starweave/internal/domain/world"

type Request struct {
	WorldID  string `json:"world_id"`
	Limit    int    `json:"limit"`
	FromTick int64  `json:"from_tick"`
	ToTick   int64  `json:"to_tick"`
}

type Response struct {
	WorldID string            `json:"world_id"`
	Events  []world.GameEvent `json:"events"`
}
