package graph

import (
	"errors"
	"reflect"
	"testing"

	"starweave/internal/domain/world"
)

func buildWorld(nodes []world.Node, conns []world.Connection) world.GameWorld {
	w := world.NewWorld("g")
	for _, n := range nodes {
		w, _ = w.AddNode(n, 0)
	}
	for _, c := range conns {
		w, _, _ = w.AddConnection(c, 0)
	}
	return w
}

func TestFindPathPrefersCheaperRoute(t *testing.T) {
	w := buildWorld(
		[]world.Node{
			world.NewNode("a", "", world.Position{X: 0, Y: 0}, 0),
			world.NewNode("b", "", world.Position{X: 1, Y: 0}, 0),
			world.NewNode("c", "", world.Position{X: 2, Y: 0}, 0),
		},
		[]world.Connection{
			world.NewConnection("a-c", "a", "c", 10),
			world.NewConnection("a-b", "a", "b", 2),
			world.NewConnection("b-c", "b", "c", 2),
		},
	)

	path, err := FindPath(w, "a", "c", nil, Context{})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(path.NodeIDs, want) {
		t.Fatalf("path = %v, want %v", path.NodeIDs, want)
	}
	if path.TotalCost != 4 {
		t.Fatalf("total cost = %v, want 4", path.TotalCost)
	}
}

func TestFindPathSameSourceTarget(t *testing.T) {
	w := buildWorld([]world.Node{world.NewNode("a", "", world.Position{}, 0)}, nil)
	path, err := FindPath(w, "a", "a", nil, Context{})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if len(path.NodeIDs) != 1 || path.NodeIDs[0] != "a" || path.TotalCost != 0 {
		t.Fatalf("self path = %+v", path)
	}
}

func TestFindPathErrors(t *testing.T) {
	w := buildWorld(
		[]world.Node{
			world.NewNode("a", "", world.Position{X: 0, Y: 0}, 0),
			world.NewNode("b", "", world.Position{X: 1, Y: 0}, 0),
		},
		nil,
	)

	if _, err := FindPath(w, "a", "ghost", nil, Context{}); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("missing target err = %v, want ErrNodeNotFound", err)
	}
	if _, err := FindPath(w, "ghost", "b", nil, Context{}); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("missing source err = %v, want ErrNodeNotFound", err)
	}
	if _, err := FindPath(w, "a", "b", nil, Context{}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("disconnected err = %v, want ErrNoPath", err)
	}
}

func TestFindPathSkipsInactiveConnections(t *testing.T) {
	inactive := world.NewConnection("a-b", "a", "b", 1)
	inactive.IsActive = false
	w := buildWorld(
		[]world.Node{
			world.NewNode("a", "", world.Position{X: 0, Y: 0}, 0),
			world.NewNode("b", "", world.Position{X: 1, Y: 0}, 0),
		},
		[]world.Connection{inactive},
	)

	if _, err := FindPath(w, "a", "b", nil, Context{}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath over inactive edge", err)
	}
}

func TestFindPathGatewayNeedsFunds(t *testing.T) {
	w := buildWorld(
		[]world.Node{
			world.NewNode("a", "", world.Position{X: 0, Y: 0}, 0),
			world.NewNode("b", "", world.Position{X: 1, Y: 0}, 0),
		},
		[]world.Connection{
			world.NewGateway("gate", "a", "b", 1, world.ResourceCost{Type: "metal", Amount: 10}, 3),
		},
	)

	if _, err := FindPath(w, "a", "b", nil, Context{}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath without funds", err)
	}
	path, err := FindPath(w, "a", "b", nil, Context{Funds: map[string]int{"metal": 10}})
	if err != nil {
		t.Fatalf("FindPath with funds: %v", err)
	}
	if path.TotalCost != 1 {
		t.Fatalf("total cost = %v, want 1", path.TotalCost)
	}
}

func TestFindPathTieBreakIsStable(t *testing.T) {
	// Two routes of identical cost; the one through the earlier-sorted
	// connection must win every time.
	nodes := []world.Node{
		world.NewNode("a", "", world.Position{X: 0, Y: 0}, 0),
		world.NewNode("m1", "", world.Position{X: 1, Y: 0}, 0),
		world.NewNode("m2", "", world.Position{X: 1, Y: 0}, 0),
		world.NewNode("z", "", world.Position{X: 2, Y: 0}, 0),
	}
	conns := []world.Connection{
		world.NewConnection("c1", "a", "m1", 1),
		world.NewConnection("c2", "a", "m2", 1),
		world.NewConnection("c3", "m1", "z", 1),
		world.NewConnection("c4", "m2", "z", 1),
	}
	w := buildWorld(nodes, conns)

	want, err := FindPath(w, "a", "z", nil, Context{})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := FindPath(w, "a", "z", nil, Context{})
		if err != nil {
			t.Fatalf("FindPath: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: path %v differs from %v", i, got.NodeIDs, want.NodeIDs)
		}
	}
	if want.NodeIDs[1] != "m1" {
		t.Fatalf("tie broken to %s, want earlier-discovered m1", want.NodeIDs[1])
	}
}

func TestFindPathCustomCostFunc(t *testing.T) {
	w := buildWorld(
		[]world.Node{
			world.NewNode("a", "", world.Position{X: 0, Y: 0}, 0),
			world.NewNode("b", "", world.Position{X: 1, Y: 0}, 0),
		},
		[]world.Connection{world.NewConnection("a-b", "a", "b", 100)},
	)

	flat := func(world.Connection) float64 { return 1 }
	path, err := FindPath(w, "a", "b", flat, Context{})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if path.TotalCost != 1 {
		t.Fatalf("total cost = %v, want 1 under flat cost func", path.TotalCost)
	}
}
