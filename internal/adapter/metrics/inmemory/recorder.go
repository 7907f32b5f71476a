package inmemory

import (
	"sync"
	"time"
)

type Snapshot struct {
	TickTotal         uint64            `json:"tick_total"`
	EventsEmitted     uint64            `json:"events_emitted"`
	EventsDropped     uint64            `json:"events_dropped"`
	IntentTotal       uint64            `json:"intent_total"`
	IntentAccepted    uint64            `json:"intent_accepted"`
	IntentRejected    uint64            `json:"intent_rejected"`
	LastTickMicros    int64             `json:"last_tick_micros"`
	AverageTickMicros int64             `json:"average_tick_micros"`
	EventsByType      map[string]uint64 `json:"events_by_type,omitempty"`
}

type Recorder struct {
	mu              sync.Mutex
	ticks           uint64
	emitted         uint64
	dropped         uint64
	intentAccepted  uint64
	intentRejected  uint64
	lastTickMicros  int64
	totalTickMicros int64
	eventsByType    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		eventsByType: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(duration time.Duration, emitted, dropped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.emitted += uint64(emitted)
	r.dropped += uint64(dropped)
	r.lastTickMicros = duration.Microseconds()
	r.totalTickMicros += duration.Microseconds()
}

func (r *Recorder) RecordIntent(accepted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if accepted {
		r.intentAccepted++
		return
	}
	r.intentRejected++
}

// RecordEventType counts one processed event by type, for the breakdown in
// the KPI snapshot.
func (r *Recorder) RecordEventType(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eventsByType[eventType]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickTotal:      r.ticks,
		EventsEmitted:  r.emitted,
		EventsDropped:  r.dropped,
		IntentAccepted: r.intentAccepted,
		IntentRejected: r.intentRejected,
		IntentTotal:    r.intentAccepted + r.intentRejected,
		LastTickMicros: r.lastTickMicros,
		EventsByType:   make(map[string]uint64, len(r.eventsByType)),
	}
	if r.ticks > 0 {
		out.AverageTickMicros = r.totalTickMicros / int64(r.ticks)
	}
	for k, v := range r.eventsByType {
		out.EventsByType[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
