package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starweave/internal/domain/world"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, worldID string, events []world.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]TickEvent, 0, len(events))
	for _, e := range events {
		var payload []byte
		if e.Payload != nil {
			payload, _ = json.Marshal(e.Payload)
		}
		rows = append(rows, TickEvent{
			WorldID:  worldID,
			Tick:     e.Tick,
			Type:     string(e.Type),
			EntityID: e.EntityID,
			Payload:  payload,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByWorld returns events oldest first. fromTick and toTick bound the
// window when positive; toTick of zero means unbounded.
func (r EventRepo) ListByWorld(ctx context.Context, worldID string, limit int, fromTick, toTick int64) ([]world.GameEvent, error) {
	query := getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID)
	if fromTick > 0 {
		query = query.Where("tick >= ?", fromTick)
	}
	if toTick > 0 {
		query = query.Where("tick <= ?", toTick)
	}
	query = query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "tick"}},
			{Column: clause.Column{Name: "id"}},
		},
	})
	if limit > 0 {
		query = query.Limit(limit)
	}

	rows := []TickEvent{}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]world.GameEvent, 0, len(rows))
	for _, row := range rows {
		payload, err := world.DecodePayload(world.EventType(row.Type), row.Payload)
		if err != nil {
			return nil, err
		}
		out = append(out, world.GameEvent{
			Type:     world.EventType(row.Type),
			Tick:     row.Tick,
			EntityID: row.EntityID,
			Payload:  payload,
		})
	}
	return out, nil
}
