package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "starweave/internal/adapter/http"
	metricsinmem "starweave/internal/adapter/metrics/inmemory"
	gormrepo "starweave/internal/adapter/repo/gorm"
	"starweave/internal/adapter/repo/memory"
	"starweave/internal/adapter/worlddef"
	"starweave/internal/adapter/ws"
	"starweave/internal/app/control"
	"starweave/internal/app/intent"
	"starweave/internal/app/observe"
	"starweave/internal/app/pathing"
	"starweave/internal/app/ports"
	"starweave/internal/app/replay"
	"starweave/internal/domain/engine"
	"starweave/internal/domain/territory"
	"starweave/internal/domain/world"
	"starweave/internal/runtime"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	worlds, events, txManager := mustBuildRepos()
	w, policy := mustLoadWorld()
	kpiRecorder := metricsinmem.NewRecorder()

	loop := runtime.NewLoop(w, runtime.Config{
		BaseTickRate: time.Duration(intEnv("STARWEAVE_TICK_MS", 1000)) * time.Millisecond,
		Engine: engine.Config{
			MaxEventDepth:    intEnv("STARWEAVE_MAX_EVENT_DEPTH", 10),
			MaxEventsPerTick: intEnv("STARWEAVE_MAX_EVENTS_PER_TICK", 1000),
		},
		Territory:   policy,
		HistorySize: intEnv("STARWEAVE_HISTORY_SIZE", 100),
		Seed:        uint32(intEnv("STARWEAVE_SEED", 1)),
	})

	hub := ws.NewHub()
	go hub.Run()
	loop.Subscribe(hub.BroadcastResult)
	loop.Subscribe(metricsListener(kpiRecorder))
	loop.Subscribe(persistListener(txManager, worlds, events, intEnv("STARWEAVE_SNAPSHOT_EVERY", 60)))

	h := httpadapter.Handler{
		ObserveUC: observe.UseCase{Loop: loop},
		IntentUC:  intent.UseCase{Loop: loop, Metrics: kpiRecorder},
		PathingUC: pathing.UseCase{Loop: loop},
		ReplayUC:  replay.UseCase{Events: events},
		ControlUC: control.UseCase{Loop: loop, Worlds: worlds},
		KPI:       kpiRecorder,
	}

	wsAddr := envOr("STARWEAVE_WS_ADDR", ":8081")
	go serveObservers(hub, wsAddr)

	loop.Start()

	httpAddr := envOr("STARWEAVE_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(httpAddr))
	h.RegisterRoutes(s)

	log.Printf("starweave server listening on %s (observers on %s, world %s)", httpAddr, wsAddr, w.ID)
	s.Spin()
}

func mustBuildRepos() (ports.WorldRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("STARWEAVE_DB_DSN"))
	if dsn == "" {
		store := memory.NewStore()
		log.Println("STARWEAVE_DB_DSN not set; snapshots and events stay in memory")
		return store, store, store
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("STARWEAVE_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return gormrepo.NewWorldRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func mustLoadWorld() (world.GameWorld, territory.Policy) {
	path := strings.TrimSpace(os.Getenv("STARWEAVE_WORLD_FILE"))
	if path == "" {
		return demoWorld(), territory.DefaultPolicy()
	}
	w, policy, err := worlddef.Load(path)
	if err != nil {
		log.Fatalf("load world definition: %v", err)
	}
	return w, policy
}

// demoWorld is a small triangle of nodes with one gateway, enough to exercise
// every endpoint without a world file.
func demoWorld() world.GameWorld {
	w := world.NewWorld("demo")
	nodes := []world.Node{
		world.NewNode("alpha", "Alpha", world.Position{X: 0, Y: 0}, 100).
			WithResource(world.Resource{Type: "metal", Quantity: 50, RegenRate: 2, MaxCapacity: 100}),
		world.NewNode("beta", "Beta", world.Position{X: 4, Y: 0}, 100).
			WithResource(world.Resource{Type: "fuel", Quantity: 30, RegenRate: 1, MaxCapacity: 60}),
		world.NewNode("gamma", "Gamma", world.Position{X: 2, Y: 3}, 100),
	}
	for _, n := range nodes {
		w, _ = w.AddNode(n, 0)
	}
	w, _, _ = w.AddConnection(world.NewConnection("alpha-beta", "alpha", "beta", 4), 0)
	w, _, _ = w.AddConnection(world.NewConnection("beta-gamma", "beta", "gamma", 5), 0)
	w, _, _ = w.AddConnection(world.NewGateway("alpha-gamma", "alpha", "gamma", 2,
		world.ResourceCost{Type: "metal", Amount: 10}, 5), 0)
	return w
}

func metricsListener(rec *metricsinmem.Recorder) runtime.Listener {
	return func(res engine.Result) {
		dropped := 0
		for _, e := range res.Events {
			rec.RecordEventType(string(e.Type))
			if e.Type != world.EventsDropped {
				continue
			}
			if p, ok := e.Payload.(world.SystemPayload); ok {
				dropped += payloadInt(p, "dropped_by_count") + payloadInt(p, "dropped_by_depth")
			}
		}
		rec.RecordTick(res.Elapsed, len(res.Events), dropped)
	}
}

func payloadInt(p world.SystemPayload, key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// persistListener appends the tick's events and saves a full snapshot every
// snapshotEvery ticks, all inside one transaction. Persistence failures are
// logged and skipped; the simulation never stalls on storage.
func persistListener(tx ports.TxManager, worlds ports.WorldRepository, events ports.EventRepository, snapshotEvery int) runtime.Listener {
	return func(res engine.Result) {
		err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
			if err := events.Append(ctx, res.World.ID, res.Events); err != nil {
				return err
			}
			if snapshotEvery > 0 && res.ProcessedTick%int64(snapshotEvery) == 0 {
				return worlds.SaveSnapshot(ctx, res.World)
			}
			return nil
		})
		if err != nil {
			log.Printf("persist tick %d: %v", res.ProcessedTick, err)
		}
	}
}

func serveObservers(hub *ws.Hub, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, w, r)
	})
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("observer listener: %v", err)
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
