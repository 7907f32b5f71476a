// Package worlddef loads a world definition from YAML and builds the initial
// game world plus the tuning knobs that ride along with it.
package worlddef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"starweave/internal/domain/territory"
	"starweave/internal/domain/world"
)

type Definition struct {
	WorldID     string           `yaml:"world_id"`
	Nodes       []NodeDef        `yaml:"nodes"`
	Connections []ConnectionDef  `yaml:"connections"`
	Territory   *TerritoryTuning `yaml:"territory,omitempty"`
}

type NodeDef struct {
	ID               string        `yaml:"id"`
	Name             string        `yaml:"name"`
	X                int           `yaml:"x"`
	Y                int           `yaml:"y"`
	MaxControlPoints int           `yaml:"max_control_points"`
	Resources        []ResourceDef `yaml:"resources,omitempty"`
}

type ResourceDef struct {
	Type        string `yaml:"type"`
	Quantity    int    `yaml:"quantity"`
	RegenRate   int    `yaml:"regen_rate"`
	MaxCapacity int    `yaml:"max_capacity"`
}

type ConnectionDef struct {
	ID         string  `yaml:"id"`
	From       string  `yaml:"from"`
	To         string  `yaml:"to"`
	TravelCost float64 `yaml:"travel_cost"`
	Gateway    bool    `yaml:"gateway,omitempty"`

	ActivationCostType   string `yaml:"activation_cost_type,omitempty"`
	ActivationCostAmount int    `yaml:"activation_cost_amount,omitempty"`
	CooldownTicks        int64  `yaml:"cooldown_ticks,omitempty"`
}

type TerritoryTuning struct {
	UncontestedGain        int `yaml:"uncontested_gain"`
	ContestedDecay         int `yaml:"contested_decay"`
	DisconnectedMultiplier int `yaml:"disconnected_multiplier"`
}

// Load reads and builds a world from the YAML file at path.
func Load(path string) (world.GameWorld, territory.Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return world.GameWorld{}, territory.Policy{}, fmt.Errorf("read world definition: %w", err)
	}
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return world.GameWorld{}, territory.Policy{}, fmt.Errorf("parse world definition: %w", err)
	}
	return Build(def)
}

// Build validates the definition and assembles the initial world. Node and
// connection insertion uses the aggregate's own operations, so the resulting
// graph is wired exactly the way runtime insertions wire it.
func Build(def Definition) (world.GameWorld, territory.Policy, error) {
	if def.WorldID == "" {
		return world.GameWorld{}, territory.Policy{}, fmt.Errorf("world definition: missing world_id")
	}

	w := world.NewWorld(def.WorldID)
	for _, nd := range def.Nodes {
		if nd.ID == "" {
			return world.GameWorld{}, territory.Policy{}, fmt.Errorf("world definition: node with empty id")
		}
		if _, exists := w.Nodes[nd.ID]; exists {
			return world.GameWorld{}, territory.Policy{}, fmt.Errorf("world definition: duplicate node %q", nd.ID)
		}
		n := world.NewNode(nd.ID, nd.Name, world.Position{X: nd.X, Y: nd.Y}, nd.MaxControlPoints)
		for _, rd := range nd.Resources {
			n = n.WithResource(world.Resource{
				Type:        rd.Type,
				Quantity:    rd.Quantity,
				RegenRate:   rd.RegenRate,
				MaxCapacity: rd.MaxCapacity,
			})
		}
		w, _ = w.AddNode(n, 0)
	}

	for _, cd := range def.Connections {
		if cd.ID == "" {
			return world.GameWorld{}, territory.Policy{}, fmt.Errorf("world definition: connection with empty id")
		}
		if _, exists := w.Connections[cd.ID]; exists {
			return world.GameWorld{}, territory.Policy{}, fmt.Errorf("world definition: duplicate connection %q", cd.ID)
		}
		var c world.Connection
		if cd.Gateway {
			c = world.NewGateway(cd.ID, cd.From, cd.To, cd.TravelCost, world.ResourceCost{
				Type:   cd.ActivationCostType,
				Amount: cd.ActivationCostAmount,
			}, cd.CooldownTicks)
		} else {
			c = world.NewConnection(cd.ID, cd.From, cd.To, cd.TravelCost)
		}
		var ok bool
		w, _, ok = w.AddConnection(c, 0)
		if !ok {
			return world.GameWorld{}, territory.Policy{}, fmt.Errorf("world definition: connection %q references missing or identical endpoints", cd.ID)
		}
	}

	policy := territory.DefaultPolicy()
	if t := def.Territory; t != nil {
		if t.UncontestedGain > 0 {
			policy.UncontestedGain = t.UncontestedGain
		}
		if t.ContestedDecay > 0 {
			policy.ContestedDecay = t.ContestedDecay
		}
		if t.DisconnectedMultiplier > 0 {
			policy.DisconnectedMultiplier = t.DisconnectedMultiplier
		}
	}
	return w, policy, nil
}
