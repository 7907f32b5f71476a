// Package runtime maps wall-clock cadence onto the pure tick processor. The
// loop is the only stateful component: it owns the current world, the
// listener set, the buffered between-tick inputs, and the seeded random
// source. Ticks never overlap; a new tick fires only after the previous one
// returned.
package runtime

import (
	"sync"
	"time"

	"starweave/internal/domain/diplomacy"
	"starweave/internal/domain/engine"
	"starweave/internal/domain/territory"
	"starweave/internal/domain/world"
)

const (
	DiplomacyOfferAlliance  = "offer_alliance"
	DiplomacyAcceptAlliance = "accept_alliance"
	DiplomacyRejectAlliance = "reject_alliance"
	DiplomacyDeclareWar     = "declare_war"
	DiplomacyProposePeace   = "propose_peace"
	DiplomacyAcceptPeace    = "accept_peace"
	DiplomacyRejectPeace    = "reject_peace"
)

// DiplomaticAction is a buffered diplomatic intent. It is applied against
// the relation table immediately before the next tick runs, since diplomacy
// is not accrual-based.
type DiplomaticAction struct {
	Kind         string `json:"kind"`
	FromPlayerID string `json:"from_player_id"`
	ToPlayerID   string `json:"to_player_id"`
}

// Listener receives the result of every processed tick, synchronously and
// in registration order.
type Listener func(engine.Result)

type Config struct {
	BaseTickRate time.Duration
	Engine       engine.Config
	Registry     *engine.Registry
	Territory    territory.Policy
	HistorySize  int
	Seed         uint32
}

func DefaultLoopConfig() Config {
	return Config{
		BaseTickRate: time.Second,
		Engine:       engine.DefaultConfig(),
		Territory:    territory.DefaultPolicy(),
	}
}

type listenerEntry struct {
	id int
	fn Listener
}

type Loop struct {
	mu           sync.Mutex
	cfg          Config
	proc         engine.Processor
	diplo        diplomacy.Service
	world        world.GameWorld
	history      *engine.History
	rng          *Rand
	listeners    []listenerEntry
	nextListener int
	claims       []territory.ClaimAction
	actions      []DiplomaticAction
	disconnected map[string]bool
	stopCh       chan struct{}
	running      bool
}

func NewLoop(w world.GameWorld, cfg Config) *Loop {
	def := DefaultLoopConfig()
	if cfg.BaseTickRate <= 0 {
		cfg.BaseTickRate = def.BaseTickRate
	}
	return &Loop{
		cfg:          cfg,
		proc:         engine.NewProcessor(cfg.Engine, cfg.Registry, territory.NewService(cfg.Territory)),
		world:        w.Clone(),
		history:      engine.NewHistory(cfg.HistorySize),
		rng:          NewRand(cfg.Seed),
		disconnected: map[string]bool{},
	}
}

// Tick applies the buffered diplomatic actions against the relation table,
// hands the buffered claims to the tick processor, and notifies listeners.
func (l *Loop) Tick() engine.Result {
	l.mu.Lock()
	if l.world.IsPaused {
		result := engine.Result{World: l.world, ProcessedTick: l.world.CurrentTick}
		l.mu.Unlock()
		return result
	}

	upcoming := l.world.CurrentTick + 1
	var preEvents []world.GameEvent
	for _, a := range l.actions {
		var evts []world.GameEvent
		l.world, evts = l.applyDiplomacy(a, upcoming)
		preEvents = append(preEvents, evts...)
	}
	l.actions = nil

	claims := l.claims
	l.claims = nil
	disconnected := l.disconnected

	started := time.Now()
	result := l.proc.ProcessTick(l.world, claims, disconnected)
	result.Elapsed = time.Since(started)
	l.world = result.World
	if len(preEvents) > 0 {
		result.Events = append(preEvents, result.Events...)
	}
	l.history.Record(result.Events...)

	notify := make([]listenerEntry, len(l.listeners))
	copy(notify, l.listeners)
	l.mu.Unlock()

	for _, entry := range notify {
		entry.fn(result)
	}
	return result
}

func (l *Loop) applyDiplomacy(a DiplomaticAction, tick int64) (world.GameWorld, []world.GameEvent) {
	switch a.Kind {
	case DiplomacyOfferAlliance:
		return l.diplo.OfferAlliance(l.world, a.FromPlayerID, a.ToPlayerID, tick)
	case DiplomacyAcceptAlliance:
		return l.diplo.AcceptAlliance(l.world, a.FromPlayerID, a.ToPlayerID, tick)
	case DiplomacyRejectAlliance:
		return l.diplo.RejectOffer(l.world, a.FromPlayerID, a.ToPlayerID, world.OfferAlliance, tick)
	case DiplomacyDeclareWar:
		return l.diplo.DeclareWar(l.world, a.FromPlayerID, a.ToPlayerID, tick)
	case DiplomacyProposePeace:
		return l.diplo.ProposePeace(l.world, a.FromPlayerID, a.ToPlayerID, tick)
	case DiplomacyAcceptPeace:
		return l.diplo.AcceptPeace(l.world, a.FromPlayerID, a.ToPlayerID, tick)
	case DiplomacyRejectPeace:
		return l.diplo.RejectOffer(l.world, a.FromPlayerID, a.ToPlayerID, world.OfferPeace, tick)
	}
	return l.world, nil
}

// Start unpauses the world and begins ticking at BaseTickRate / speed.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.world.IsPaused = false
	stop := make(chan struct{})
	l.stopCh = stop
	l.mu.Unlock()
	go l.run(stop)
}

// Stop cancels the interval and re-pauses the world. A tick already running
// finishes; a tick cannot block, so there is nothing to cancel mid-flight.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.world.IsPaused = true
	l.mu.Unlock()
}

func (l *Loop) run(stop chan struct{}) {
	for {
		timer := time.NewTimer(l.interval())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			l.Tick()
		}
	}
}

func (l *Loop) interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	speed := l.world.Speed
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(l.cfg.BaseTickRate) / speed)
}

// Subscribe registers a listener and returns its unsubscribe function.
func (l *Loop) Subscribe(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextListener
	l.nextListener++
	l.listeners = append(l.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, entry := range l.listeners {
			if entry.id == id {
				l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

// SubmitClaim buffers a claim for the next tick. It reports false when the
// claim fails the boundary predicate and was not buffered.
func (l *Loop) SubmitClaim(c territory.ClaimAction) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !territory.CanClaim(l.world, c.PlayerID, c.NodeID) {
		return false
	}
	l.claims = append(l.claims, c)
	return true
}

// SubmitDiplomacy buffers a diplomatic action for the next tick.
func (l *Loop) SubmitDiplomacy(a DiplomaticAction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, a)
}

// MarkDisconnected flags or unflags an owner as disconnected; contested
// decay against a disconnected owner is accelerated by policy.
func (l *Loop) MarkDisconnected(playerID string, disconnected bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if disconnected {
		l.disconnected[playerID] = true
		return
	}
	delete(l.disconnected, playerID)
}

// SetSpeed adjusts the tick cadence multiplier. Non-positive values are
// ignored.
func (l *Loop) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.world.Speed = speed
}

func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.world.IsPaused = true
}

func (l *Loop) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.world.IsPaused = false
}

// Snapshot returns a deep copy of the current world, safe to read while the
// loop keeps ticking.
func (l *Loop) Snapshot() world.GameWorld {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.world.Clone()
}

// Restore replaces the wrapped world, e.g. after loading a persisted
// snapshot.
func (l *Loop) Restore(w world.GameWorld) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.world = w.Clone()
}

// History returns the retained processed events, oldest first.
func (l *Loop) History() []world.GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history.Events()
}

// Rand exposes the loop's seeded generator for boundary features that need
// reproducible randomness.
func (l *Loop) Rand() *Rand {
	return l.rng
}
