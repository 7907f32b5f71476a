package ports

import "time"

type TickMetrics interface {
	RecordTick(duration time.Duration, emitted, dropped int)
	RecordIntent(accepted bool)
}
