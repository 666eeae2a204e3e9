// Package config provides configuration loading and parsing for the
// planning platform, including declarative agent definitions used by the
// CLI.
package config

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates the config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidFormat indicates the config could not be parsed.
	ErrInvalidFormat = errors.New("invalid config format")

	// ErrUnsupportedFormat indicates an unrecognized file extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrMissingEnvVar indicates a required environment variable is unset.
	ErrMissingEnvVar = errors.New("missing environment variable")

	// ErrValidationFailed indicates the config failed validation.
	ErrValidationFailed = errors.New("config validation failed")
)

// PlatformConfig is the root configuration.
type PlatformConfig struct {
	// MaxActions is the per-process execution budget (0 = platform default).
	MaxActions int `yaml:"max_actions" json:"max_actions"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Redis configures the optional Redis process store. Nil means the
	// in-memory store.
	Redis *RedisConfig `yaml:"redis,omitempty" json:"redis,omitempty"`

	// Agents are declarative agent definitions.
	Agents []AgentSpec `yaml:"agents" json:"agents"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json or console).
	Format string `yaml:"format" json:"format"`
}

// RedisConfig configures the Redis process store.
type RedisConfig struct {
	Address   string `yaml:"address" json:"address"`
	Password  string `yaml:"password,omitempty" json:"password,omitempty"`
	DB        int    `yaml:"db,omitempty" json:"db,omitempty"`
	KeyPrefix string `yaml:"key_prefix,omitempty" json:"key_prefix,omitempty"`
}

// AgentSpec is a declarative agent definition. Conditions are derived from
// blackboard bindings at run time; the spec lists only goals and actions.
type AgentSpec struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Goals       []GoalSpec   `yaml:"goals" json:"goals"`
	Actions     []ActionSpec `yaml:"actions" json:"actions"`
}

// GoalSpec is a declarative goal.
type GoalSpec struct {
	Name          string          `yaml:"name" json:"name"`
	Value         float64         `yaml:"value" json:"value"`
	Preconditions map[string]bool `yaml:"preconditions" json:"preconditions"`
}

// ActionSpec is a declarative action. Executing it binds its true effects
// into the blackboard, which is enough for plan simulation from the CLI.
type ActionSpec struct {
	Name          string          `yaml:"name" json:"name"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	Cost          float64         `yaml:"cost" json:"cost"`
	Value         float64         `yaml:"value,omitempty" json:"value,omitempty"`
	Idempotent    bool            `yaml:"idempotent,omitempty" json:"idempotent,omitempty"`
	Preconditions map[string]bool `yaml:"preconditions,omitempty" json:"preconditions,omitempty"`
	Effects       map[string]bool `yaml:"effects" json:"effects"`
}

// Validate checks the configuration for structural errors.
func (c *PlatformConfig) Validate() error {
	if c.MaxActions < 0 {
		return fmt.Errorf("%w: max_actions must not be negative", ErrValidationFailed)
	}

	seen := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agents[%d] has no name", ErrValidationFailed, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate agent %q", ErrValidationFailed, a.Name)
		}
		seen[a.Name] = true

		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single agent definition.
func (a *AgentSpec) Validate() error {
	if len(a.Goals) == 0 {
		return fmt.Errorf("%w: agent %q has no goals", ErrValidationFailed, a.Name)
	}
	for _, g := range a.Goals {
		if g.Name == "" {
			return fmt.Errorf("%w: agent %q has a goal with no name", ErrValidationFailed, a.Name)
		}
		if len(g.Preconditions) == 0 {
			return fmt.Errorf("%w: goal %q has no preconditions", ErrValidationFailed, g.Name)
		}
	}

	names := make(map[string]bool, len(a.Actions))
	for _, act := range a.Actions {
		if act.Name == "" {
			return fmt.Errorf("%w: agent %q has an action with no name", ErrValidationFailed, a.Name)
		}
		if names[act.Name] {
			return fmt.Errorf("%w: duplicate action %q in agent %q", ErrValidationFailed, act.Name, a.Name)
		}
		names[act.Name] = true

		if act.Cost < 0 {
			return fmt.Errorf("%w: action %q has negative cost", ErrValidationFailed, act.Name)
		}
		if len(act.Effects) == 0 {
			return fmt.Errorf("%w: action %q has no effects", ErrValidationFailed, act.Name)
		}
	}
	return nil
}
