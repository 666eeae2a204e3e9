// Package api exports. This file provides the configuration surface:
// declarative YAML/JSON platform definitions and their loading.
package api

import (
	infraconfig "github.com/felixgeelhaar/goap-go/infrastructure/config"
)

// Re-export configuration types.
type (
	// PlatformSpec is the root of a declarative platform definition.
	PlatformSpec = infraconfig.PlatformConfig
	// AgentSpec declares an agent.
	AgentSpec = infraconfig.AgentSpec
	// GoalSpec declares a goal.
	GoalSpec = infraconfig.GoalSpec
	// ActionSpec declares an action.
	ActionSpec = infraconfig.ActionSpec
	// LoggingSpec configures the structured logger.
	LoggingSpec = infraconfig.LoggingConfig
	// RedisSpec configures the Redis process store.
	RedisSpec = infraconfig.RedisConfig

	// ConfigLoader loads platform definitions from files or readers.
	ConfigLoader = infraconfig.Loader
	// ConfigLoaderOption configures the loader.
	ConfigLoaderOption = infraconfig.LoaderOption
	// ConfigFormat identifies a definition file format.
	ConfigFormat = infraconfig.Format
)

// Configuration formats.
const (
	// ConfigFormatYAML is the YAML format.
	ConfigFormatYAML = infraconfig.FormatYAML
	// ConfigFormatJSON is the JSON format.
	ConfigFormatJSON = infraconfig.FormatJSON
)

// NewConfigLoader creates a loader with defaults (env expansion and
// validation enabled).
func NewConfigLoader() *ConfigLoader {
	return infraconfig.NewLoader()
}

// NewConfigLoaderWithOptions creates a loader with the given options.
func NewConfigLoaderWithOptions(opts ...ConfigLoaderOption) *ConfigLoader {
	return infraconfig.NewLoaderWithOptions(opts...)
}

// ConfigWithEnvExpansion toggles ${VAR} expansion in definitions.
func ConfigWithEnvExpansion(enabled bool) ConfigLoaderOption {
	return infraconfig.WithEnvExpansion(enabled)
}

// ConfigWithStrictEnv makes unresolved environment references an error.
func ConfigWithStrictEnv(enabled bool) ConfigLoaderOption {
	return infraconfig.WithStrictEnv(enabled)
}

// ConfigWithValidation toggles semantic validation after decoding.
func ConfigWithValidation(enabled bool) ConfigLoaderOption {
	return infraconfig.WithValidation(enabled)
}

// BuildAgent constructs a runnable agent from a declarative spec. The
// built actions simulate execution by binding their asserted effects.
func BuildAgent(spec AgentSpec) (*Agent, error) {
	return infraconfig.BuildAgent(spec)
}

// BuildAgents constructs all agents declared in a platform definition.
func BuildAgents(cfg *PlatformSpec) ([]*Agent, error) {
	return infraconfig.BuildAgents(cfg)
}
