package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kinelab/kinelab/internal/motion"
)

const (
	DefaultStep      = 0.1
	DefaultHorizon   = 20.0
	DefaultIncrement = 0.05
	DefaultVMin      = -10.0
	DefaultVMax      = 10.0
)

// BodyConfig describes one body in a scenario file.
type BodyConfig struct {
	Name     string             `yaml:"name"`
	X0       float64            `yaml:"x0"`
	V0       float64            `yaml:"v0"`
	A        float64            `yaml:"a"`
	UseGraph bool               `yaml:"use_graph"`
	Graph    []motion.GraphPoint `yaml:"graph,omitempty"`
}

// Config is a full two-body scenario: sampling grid, playback increment,
// editor velocity bounds, and both body definitions.
type Config struct {
	Step      float64    `yaml:"step"`
	Horizon   float64    `yaml:"horizon"`
	Increment float64    `yaml:"increment"`
	VMin      float64    `yaml:"v_min"`
	VMax      float64    `yaml:"v_max"`
	BodyA     BodyConfig `yaml:"body_a"`
	BodyB     BodyConfig `yaml:"body_b"`
}

func DefaultConfig() *Config {
	return &Config{
		Step:      DefaultStep,
		Horizon:   DefaultHorizon,
		Increment: DefaultIncrement,
		VMin:      DefaultVMin,
		VMax:      DefaultVMax,
		BodyA:     BodyConfig{Name: "a", X0: 0, V0: 5, A: 0},
		BodyB:     BodyConfig{Name: "b", X0: 50, V0: -2, A: 0},
	}
}

// Load reads a scenario file, layering it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the scenario to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Body converts one body section to the engine's value type.
func (bc BodyConfig) Body() motion.Body {
	return motion.Body{
		Name:      bc.Name,
		X0:        bc.X0,
		V0:        bc.V0,
		A:         bc.A,
		UsesGraph: bc.UseGraph,
		Graph:     motion.VelocityGraph(bc.Graph).Clone(),
	}
}

// Bodies returns both body snapshots.
func (c *Config) Bodies() (a, b motion.Body) {
	return c.BodyA.Body(), c.BodyB.Body()
}
