// Package engine orchestrates one discrete step of simulated time: claim
// accrual, resource regeneration, gateway cooldowns, and the event queue,
// in a fixed phase order. ProcessTick is a pure function of its inputs.
package engine

// Config bounds event processing. The limits are circuit breakers against
// runaway handler feedback loops, not gameplay tuning.
type Config struct {
	MaxEventDepth    int
	MaxEventsPerTick int
}

func DefaultConfig() Config {
	return Config{
		MaxEventDepth:    10,
		MaxEventsPerTick: 1000,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxEventDepth <= 0 {
		c.MaxEventDepth = def.MaxEventDepth
	}
	if c.MaxEventsPerTick <= 0 {
		c.MaxEventsPerTick = def.MaxEventsPerTick
	}
	return c
}
