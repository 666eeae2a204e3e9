package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/infrastructure/worldstate"
	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// planOptions holds options for the plan command.
type planOptions struct {
	configPath string
	agentName  string
	bindings   map[string]string
	jsonOutput bool
}

// newPlanCmd creates the plan command.
func (a *App) newPlanCmd() *cobra.Command {
	opts := &planOptions{
		bindings: make(map[string]string),
	}

	cmd := &cobra.Command{
		Use:   "plan [agent]",
		Short: "Compute a plan without executing it",
		Long: `Compute the best-value plan for an agent against a seeded blackboard,
without executing anything.

Examples:
  # Plan for the only agent in the definition
  goap plan -c platform.yaml

  # Plan for a named agent with seeded bindings
  goap plan -c platform.yaml journalist --bind topic=launch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.agentName = args[0]
			}
			return a.computePlan(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to platform definition file")
	cmd.Flags().StringToStringVar(&opts.bindings, "bind", nil, "Seed blackboard bindings (name=value)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the plan as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// computePlan plans for the selected agent and prints the result.
func (a *App) computePlan(cmd *cobra.Command, opts *planOptions) error {
	ag, err := a.loadAgent(opts.configPath, opts.agentName)
	if err != nil {
		return err
	}

	bb := api.NewBlackboard()
	for name, value := range opts.bindings {
		bb.Bind(name, value)
	}

	system := ag.System()
	det := worldstate.New(bb, ag.Conditions(), referencedConditions(system))

	plan, err := api.NewPlanner().BestValuePlanToAnyGoal(cmd.Context(), det, system)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if opts.jsonOutput {
		output := map[string]any{"agent": ag.Name(), "found": plan != nil}
		if plan != nil {
			output["goal"] = plan.Goal.Name
			output["actions"] = plan.ActionNames()
			output["cost"] = plan.Cost()
			output["value"] = plan.Value()
			output["forced_evaluations"] = plan.ForcedEvaluations
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	if plan == nil {
		fmt.Fprintf(a.stdout, "No plan reaches any goal of %q from the seeded blackboard.\n", ag.Name())
		return nil
	}

	fmt.Fprintf(a.stdout, "Plan for %q (goal %q, cost %.1f, value %.1f):\n",
		ag.Name(), plan.Goal.Name, plan.Cost(), plan.Value())
	if plan.Empty() {
		fmt.Fprintf(a.stdout, "  goal already satisfied, no actions needed\n")
		return nil
	}
	for i, name := range plan.ActionNames() {
		fmt.Fprintf(a.stdout, "  %d. %s\n", i+1, name)
	}
	if plan.ForcedEvaluations > 0 {
		fmt.Fprintf(a.stdout, "  (%d conditions evaluated eagerly)\n", plan.ForcedEvaluations)
	}

	return nil
}

// loadAgent loads the definition file and builds the selected agent. An
// empty name selects the only agent in the definition.
func (a *App) loadAgent(configPath, agentName string) (*api.Agent, error) {
	cfg, err := api.NewConfigLoader().LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition: %w", err)
	}

	if agentName == "" {
		if len(cfg.Agents) != 1 {
			names := make([]string, len(cfg.Agents))
			for i, spec := range cfg.Agents {
				names[i] = spec.Name
			}
			return nil, fmt.Errorf("definition declares %d agents (%s); name one",
				len(cfg.Agents), strings.Join(names, ", "))
		}
		return api.BuildAgent(cfg.Agents[0])
	}

	for _, spec := range cfg.Agents {
		if spec.Name == agentName {
			return api.BuildAgent(spec)
		}
	}
	return nil, fmt.Errorf("agent %q not found in definition", agentName)
}

// referencedConditions collects every condition name the system mentions.
func referencedConditions(system api.System) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(spec api.EffectSpec) {
		for _, name := range spec.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	for _, g := range system.Goals {
		add(g.Preconditions)
	}
	for _, act := range system.Actions {
		add(act.Preconditions)
		add(act.Effects)
	}
	return names
}
