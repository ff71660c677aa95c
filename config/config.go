// Package config loads run and pipeline configuration from YAML files and
// resolves op specifications into concrete ops through a registry.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/trainflow/trainflow/ops"
)

// OpSpec describes one op in a configured chain: the registered factory name,
// an optional semver constraint, the contract keys and phases, and factory
// parameters.
type OpSpec struct {
	Name    string         `mapstructure:"name" yaml:"name"`
	Version string         `mapstructure:"version" yaml:"version,omitempty"` // semver constraint, default any
	Inputs  []string       `mapstructure:"inputs" yaml:"inputs,omitempty"`
	Outputs []string       `mapstructure:"outputs" yaml:"outputs,omitempty"`
	Phases  []string       `mapstructure:"phases" yaml:"phases,omitempty"` // empty = every phase
	Params  map[string]any `mapstructure:"params" yaml:"params,omitempty"`
}

// Config is the file-configurable surface of a run.
type Config struct {
	Epochs    int      `mapstructure:"epochs" yaml:"epochs"`
	BatchSize int      `mapstructure:"batch_size" yaml:"batch_size"`
	Workers   int      `mapstructure:"workers" yaml:"workers"`
	Seed      int64    `mapstructure:"seed" yaml:"seed"`
	Monitor   []string `mapstructure:"monitor" yaml:"monitor,omitempty"`
	Ops       []OpSpec `mapstructure:"ops" yaml:"ops,omitempty"`
}

// Load loads the config from a file.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Epochs < 0 {
		return fmt.Errorf("epochs %d must not be negative", c.Epochs)
	}
	for i, spec := range c.Ops {
		if spec.Name == "" {
			return fmt.Errorf("ops[%d]: name is required", i)
		}
	}

	return nil
}

// BuildOps resolves every op spec through r and returns the concrete chain in
// spec order.
func (c *Config) BuildOps(r *ops.Registry) ([]ops.Op, error) {
	chain := make([]ops.Op, 0, len(c.Ops))
	for i, spec := range c.Ops {
		factory, err := r.Resolve(spec.Name, spec.Version)
		if err != nil {
			return nil, fmt.Errorf("ops[%d]: %w", i, err)
		}

		phases := make([]ops.Phase, len(spec.Phases))
		for j, p := range spec.Phases {
			phases[j] = ops.Phase(p)
		}

		op, err := factory(ops.FactoryArgs{
			Inputs:  spec.Inputs,
			Outputs: spec.Outputs,
			Mode:    ops.In(phases...),
			Params:  spec.Params,
		})
		if err != nil {
			return nil, fmt.Errorf("ops[%d] %q: %w", i, spec.Name, err)
		}
		chain = append(chain, op)
	}

	return chain, nil
}

// String renders the config as YAML for run logs. Never includes secrets, as
// the config carries none.
func (c Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}

	return string(b)
}
