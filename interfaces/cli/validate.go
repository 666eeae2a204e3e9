package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a platform definition file",
		Long: `Validate a platform definition file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Agent, goal, and action declarations
  - Condition references between preconditions and effects
  - Environment variable references (in strict mode)

Examples:
  # Validate a definition file
  goap validate -c platform.yaml

  # Strict validation (fail on missing env vars)
  goap validate -c platform.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to platform definition file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on unresolved environment variables")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// validateConfig validates the platform definition file.
func (a *App) validateConfig(opts *validateOptions) error {
	loaderOpts := []api.ConfigLoaderOption{
		api.ConfigWithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, api.ConfigWithStrictEnv(true))
	}

	loader := api.NewConfigLoaderWithOptions(loaderOpts...)
	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// The builder catches declarations the schema alone cannot reject,
	// like an action asserting and requiring the same condition.
	if _, err := api.BuildAgents(cfg); err != nil {
		return fmt.Errorf("agent build failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Platform definition is valid\n")
	fmt.Fprintf(a.stdout, "\nDefinition summary:\n")
	if cfg.MaxActions > 0 {
		fmt.Fprintf(a.stdout, "  Max actions: %d\n", cfg.MaxActions)
	}
	if cfg.Redis != nil {
		fmt.Fprintf(a.stdout, "  Process store: redis (%s)\n", cfg.Redis.Address)
	} else {
		fmt.Fprintf(a.stdout, "  Process store: in-memory\n")
	}
	fmt.Fprintf(a.stdout, "  Agents: %d\n", len(cfg.Agents))
	for _, agentSpec := range cfg.Agents {
		fmt.Fprintf(a.stdout, "    - %s (%d goals, %d actions)\n",
			agentSpec.Name, len(agentSpec.Goals), len(agentSpec.Actions))
	}

	return nil
}
