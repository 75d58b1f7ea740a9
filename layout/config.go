package layout

import (
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"gopkg.in/yaml.v3"
)

type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r Rect) Contains(pos vector.Vector) bool {
	return pos.X() >= r.X && pos.X() <= r.X+r.Width && pos.Y() >= r.Y && pos.Y() <= r.Y+r.Height
}

func (r Rect) Center() vector.Vector {
	return vector.Vector{r.X + r.Width/2, r.Y + r.Height/2}
}

type ForceSimulationConfig struct {
	// Rect is the area nodes are randomly placed in.
	Rect Rect `yaml:"rect"`
	// Equilibrium is the ideal length of an association between two nodes
	// that have a single association each.
	Equilibrium float64 `yaml:"equilibrium"`
	// EquilibriumGrowth scales the ideal length by EquilibriumGrowth^c where
	// c is the smaller association count of both endpoints, if c > 1.
	EquilibriumGrowth float64 `yaml:"equilibriumGrowth"`
	SpringCoefficient float64 `yaml:"springCoefficient"`
	// SpringOvershootFloor bounds how far past the equilibrium the spring
	// keeps pulling harder. Must be negative.
	SpringOvershootFloor       float64 `yaml:"springOvershootFloor"`
	SiblingRepulsion           float64 `yaml:"siblingRepulsion"`
	SiblingRepulsionAggressive float64 `yaml:"siblingRepulsionAggressive"`
	IslandRepulsion            float64 `yaml:"islandRepulsion"`
	IslandRepulsionAggressive  float64 `yaml:"islandRepulsionAggressive"`
	// islands further apart than this do not interact at all
	IslandMaxDistance float64 `yaml:"islandMaxDistance"`
	IslandMinDistance float64 `yaml:"islandMinDistance"`
	// MinDistanceBetweenNodes floors the sibling repulsion distance.
	MinDistanceBetweenNodes float64 `yaml:"minDistanceBetweenNodes"`
	// ZeroDistance replaces a spring length of exactly zero.
	ZeroDistance  float64 `yaml:"zeroDistance"`
	Damping       float64 `yaml:"damping"`
	IslandDamping float64 `yaml:"islandDamping"`

	SiblingThresholds Thresholds `yaml:"siblingThresholds"`
	IslandThresholds  Thresholds `yaml:"islandThresholds"`
	NodeThresholds    Thresholds `yaml:"nodeThresholds"`
	RenderThresholds  Thresholds `yaml:"renderThresholds"`

	// Seed makes the initial placement reproducible, unless RandomFloat is
	// set. Zero means unseeded.
	Seed        int64          `yaml:"seed"`
	RandomFloat func() float64 `yaml:"-"`
}

var DefaultForceSimulationConfig = ForceSimulationConfig{
	Rect:                       Rect{X: 0, Y: 0, Width: 1200, Height: 800},
	Equilibrium:                150,
	EquilibriumGrowth:          1.2,
	SpringCoefficient:          0.005,
	SpringOvershootFloor:       -1000,
	SiblingRepulsion:           0.08,
	SiblingRepulsionAggressive: 0.15,
	IslandRepulsion:            5.5,
	IslandRepulsionAggressive:  50,
	IslandMaxDistance:          10000,
	IslandMinDistance:          40,
	MinDistanceBetweenNodes:    0.001,
	ZeroDistance:               0.1,
	Damping:                    0.1,
	IslandDamping:              0.005,
	SiblingThresholds:          Thresholds{Mild: 1000, Medium: 2000, Aggressive: 2500},
	IslandThresholds:           Thresholds{Mild: 100, Medium: 500, Aggressive: 1000},
	NodeThresholds:             Thresholds{Mild: 1000, Medium: 5000, Aggressive: 10000},
	RenderThresholds:           Thresholds{Mild: 500, Medium: 1000, Aggressive: 2000},
}

// ApplyDefaults replaces every zero value with the value from
// DefaultForceSimulationConfig.
func (conf ForceSimulationConfig) ApplyDefaults() ForceSimulationConfig {
	def := DefaultForceSimulationConfig
	if conf.Rect.Width == 0.0 || conf.Rect.Height == 0.0 {
		conf.Rect = def.Rect
	}
	if conf.Equilibrium == 0.0 {
		conf.Equilibrium = def.Equilibrium
	}
	if conf.EquilibriumGrowth == 0.0 {
		conf.EquilibriumGrowth = def.EquilibriumGrowth
	}
	if conf.SpringCoefficient == 0.0 {
		conf.SpringCoefficient = def.SpringCoefficient
	}
	if conf.SpringOvershootFloor == 0.0 {
		conf.SpringOvershootFloor = def.SpringOvershootFloor
	}
	if conf.SiblingRepulsion == 0.0 {
		conf.SiblingRepulsion = def.SiblingRepulsion
	}
	if conf.SiblingRepulsionAggressive == 0.0 {
		conf.SiblingRepulsionAggressive = def.SiblingRepulsionAggressive
	}
	if conf.IslandRepulsion == 0.0 {
		conf.IslandRepulsion = def.IslandRepulsion
	}
	if conf.IslandRepulsionAggressive == 0.0 {
		conf.IslandRepulsionAggressive = def.IslandRepulsionAggressive
	}
	if conf.IslandMaxDistance == 0.0 {
		conf.IslandMaxDistance = def.IslandMaxDistance
	}
	if conf.IslandMinDistance == 0.0 {
		conf.IslandMinDistance = def.IslandMinDistance
	}
	if conf.MinDistanceBetweenNodes == 0.0 {
		conf.MinDistanceBetweenNodes = def.MinDistanceBetweenNodes
	}
	if conf.ZeroDistance == 0.0 {
		conf.ZeroDistance = def.ZeroDistance
	}
	if conf.Damping == 0.0 {
		conf.Damping = def.Damping
	}
	if conf.IslandDamping == 0.0 {
		conf.IslandDamping = def.IslandDamping
	}
	if conf.SiblingThresholds.isZero() {
		conf.SiblingThresholds = def.SiblingThresholds
	}
	if conf.IslandThresholds.isZero() {
		conf.IslandThresholds = def.IslandThresholds
	}
	if conf.NodeThresholds.isZero() {
		conf.NodeThresholds = def.NodeThresholds
	}
	if conf.RenderThresholds.isZero() {
		conf.RenderThresholds = def.RenderThresholds
	}
	if conf.RandomFloat == nil {
		if conf.Seed != 0 {
			conf.RandomFloat = rand.New(rand.NewSource(conf.Seed)).Float64
		} else {
			conf.RandomFloat = rand.Float64
		}
	}
	return conf
}

// LoadConfigFile reads a YAML tuning file. Keys missing from the file keep
// their default value.
func LoadConfigFile(path string) (ForceSimulationConfig, error) {
	conf := ForceSimulationConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrapf(err, "read layout config '%s'", path)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "parse layout config '%s'", path)
	}
	return conf.ApplyDefaults(), nil
}

func (conf ForceSimulationConfig) RandomVectorInside() vector.Vector {
	return vector.Vector{
		conf.Rect.X + conf.RandomFloat()*conf.Rect.Width,
		conf.Rect.Y + conf.RandomFloat()*conf.Rect.Height,
	}
}
