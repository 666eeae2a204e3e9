package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// newAgentsCmd creates the agents command.
func (a *App) newAgentsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List the agents in a platform definition",
		Long: `List every agent declared in a platform definition, with its goals,
actions, and the conditions they mention.

Examples:
  goap agents -c platform.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listAgents(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to platform definition file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// listAgents prints a summary of every declared agent.
func (a *App) listAgents(configPath string) error {
	cfg, err := api.NewConfigLoader().LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load definition: %w", err)
	}

	for _, spec := range cfg.Agents {
		fmt.Fprintf(a.stdout, "%s\n", spec.Name)
		if spec.Description != "" {
			fmt.Fprintf(a.stdout, "  %s\n", spec.Description)
		}

		fmt.Fprintf(a.stdout, "  Goals:\n")
		for _, goal := range spec.Goals {
			fmt.Fprintf(a.stdout, "    - %s (value %.1f, requires %s)\n",
				goal.Name, goal.Value, conditionList(goal.Preconditions))
		}

		fmt.Fprintf(a.stdout, "  Actions:\n")
		for _, act := range spec.Actions {
			fmt.Fprintf(a.stdout, "    - %s (cost %.1f", act.Name, act.Cost)
			if len(act.Preconditions) > 0 {
				fmt.Fprintf(a.stdout, ", requires %s", conditionList(act.Preconditions))
			}
			if len(act.Effects) > 0 {
				fmt.Fprintf(a.stdout, ", asserts %s", conditionList(act.Effects))
			}
			fmt.Fprintf(a.stdout, ")\n")
		}
	}

	return nil
}

// conditionList renders a condition map as "name, !negated" in sorted order.
func conditionList(conditions map[string]bool) string {
	if len(conditions) == 0 {
		return "nothing"
	}
	names := make([]string, 0, len(conditions))
	for name := range conditions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		if !conditions[name] {
			out += "!"
		}
		out += name
	}
	return out
}
