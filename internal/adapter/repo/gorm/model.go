package gormrepo

import "time"

// WorldSnapshot is a whole-world save. The world JSON is lz4-compressed and
// the checksum is taken over the uncompressed bytes, so a corrupted row is
// caught on load rather than restored silently.
type WorldSnapshot struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	WorldID   string `gorm:"size:64;index:idx_world_snapshots_world_tick,priority:1"`
	Tick      int64  `gorm:"index:idx_world_snapshots_world_tick,priority:2"`
	Blob      []byte
	Checksum  string `gorm:"size:64"`
	CreatedAt time.Time
}

func (WorldSnapshot) TableName() string { return "world_snapshots" }

// TickEvent is one processed game event, stored with its envelope fields
// lifted into columns for windowed replay queries.
type TickEvent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	WorldID   string `gorm:"size:64;index:idx_tick_events_world_tick,priority:1"`
	Tick      int64  `gorm:"index:idx_tick_events_world_tick,priority:2"`
	Type      string `gorm:"size:48"`
	EntityID  string `gorm:"size:64"`
	Payload   []byte
	CreatedAt time.Time
}

func (TickEvent) TableName() string { return "tick_events" }
