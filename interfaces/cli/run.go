package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// runOptions holds options for the run command.
type runOptions struct {
	configPath  string
	agentName   string
	bindings    map[string]string
	maxActions  int
	timeout     time.Duration
	autoApprove bool
	verbose     bool
	jsonOutput  bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{
		bindings: make(map[string]string),
	}

	cmd := &cobra.Command{
		Use:   "run [agent]",
		Short: "Run an agent process to completion",
		Long: `Run an agent from a platform definition until its process reaches a
terminal state (completed, failed, stuck, or killed).

When an action suspends on a confirmation, the command prompts on stdin;
form submissions are answered with comma-separated name=value pairs.
With --auto-approve every confirmation is accepted without prompting.

Examples:
  # Run the only agent in the definition
  goap run -c platform.yaml --bind topic=launch

  # Run a named agent, approving all confirmations
  goap run -c platform.yaml journalist --auto-approve

  # Cap the action budget and overall duration
  goap run -c platform.yaml --max-actions 20 --timeout 5m`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.agentName = args[0]
			}
			return a.runProcess(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to platform definition file")
	cmd.Flags().StringToStringVar(&opts.bindings, "bind", nil, "Seed blackboard bindings (name=value)")
	cmd.Flags().IntVar(&opts.maxActions, "max-actions", 0, "Action budget (overrides definition)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Overall run timeout")
	cmd.Flags().BoolVar(&opts.autoApprove, "auto-approve", false, "Accept every confirmation without prompting")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print plan and action events as they happen")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the final snapshot as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runProcess builds a platform from the definition and drives one process.
func (a *App) runProcess(ctx context.Context, opts *runOptions) error {
	cfg, err := api.NewConfigLoader().LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load definition: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	platformCfg := api.PlatformConfig{MaxActions: cfg.MaxActions}
	if opts.maxActions > 0 {
		platformCfg.MaxActions = opts.maxActions
	}
	if cfg.Redis != nil {
		store, err := api.NewRedisProcessStore(api.RedisStoreConfig{
			Address:   cfg.Redis.Address,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return fmt.Errorf("failed to connect process store: %w", err)
		}
		defer func() { _ = store.Close() }()
		platformCfg.Store = store
	}

	bus := api.NewEventBus()
	platformCfg.Publisher = bus

	platform := api.NewPlatform(platformCfg)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = platform.Shutdown(shutdownCtx)
	}()

	agents, err := api.BuildAgents(cfg)
	if err != nil {
		return fmt.Errorf("failed to build agents: %w", err)
	}
	var selected *api.Agent
	for _, ag := range agents {
		if err := platform.RegisterAgent(ag); err != nil {
			return fmt.Errorf("failed to register agent %q: %w", ag.Name(), err)
		}
		if ag.Name() == opts.agentName {
			selected = ag
		}
	}
	if opts.agentName == "" {
		if len(agents) != 1 {
			return fmt.Errorf("definition declares %d agents; name one", len(agents))
		}
		selected = agents[0]
	}
	if selected == nil {
		return fmt.Errorf("agent %q not found in definition", opts.agentName)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	bindings := make(map[string]any, len(opts.bindings))
	for name, value := range opts.bindings {
		bindings[name] = value
	}

	handle, err := platform.Start(ctx, selected.Name(), bindings)
	if err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}
	events, err := bus.Subscribe(ctx, handle.ProcessID)
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}

	if opts.verbose {
		fmt.Fprintf(a.stdout, "Process %s started for agent %q\n", handle.ProcessID, selected.Name())
	}

	start := time.Now()
	if err := a.driveProcess(ctx, platform, handle, events, opts); err != nil {
		return err
	}

	snap, err := platform.Wait(ctx, handle.ProcessID)
	if err != nil {
		return fmt.Errorf("failed to await final state: %w", err)
	}
	return a.printResult(snap, time.Since(start), opts)
}

// driveProcess reacts to lifecycle events until the process finishes,
// answering awaitables as they come up.
func (a *App) driveProcess(ctx context.Context, platform *api.Platform, handle *api.ProcessHandle, events <-chan api.Event, opts *runOptions) error {
	for {
		select {
		case <-ctx.Done():
			_ = platform.Kill(context.Background(), handle.ProcessID)
			return ctx.Err()

		case <-handle.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case api.EventProcessSuspended:
				if err := a.answerAwaitable(ctx, platform, handle.ProcessID, opts); err != nil {
					return err
				}
			case api.EventPlanComputed:
				if opts.verbose {
					a.printPlanEvent(ev)
				}
			case api.EventActionExecuted:
				if opts.verbose {
					a.printActionEvent(ev)
				}
			case api.EventProcessCompleted, api.EventProcessFailed, api.EventProcessStuck, api.EventProcessKilled:
				return nil
			}
		}
	}
}

// answerAwaitable resolves the pending awaitable, prompting unless
// auto-approval is on.
func (a *App) answerAwaitable(ctx context.Context, platform *api.Platform, processID string, opts *runOptions) error {
	aw, err := platform.Pending(ctx, processID)
	if err != nil {
		// Already resolved or the process died between the event and now.
		return nil
	}

	var response api.AwaitableResponse
	switch aw.Kind {
	case api.KindConfirmation:
		accepted := true
		if !opts.autoApprove {
			fmt.Fprintf(a.stdout, "\n%s [y/N]: ", aw.Message)
			line, err := a.readLine()
			if err != nil {
				return err
			}
			accepted = strings.EqualFold(line, "y") || strings.EqualFold(line, "yes")
		}
		response = api.NewConfirmationResponse(aw.ID, accepted)

	case api.KindFormSubmission:
		fmt.Fprintf(a.stdout, "\n%s (name=value, comma-separated): ", aw.Message)
		line, err := a.readLine()
		if err != nil {
			return err
		}
		formData := make(map[string]any)
		for _, pair := range strings.Split(line, ",") {
			name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
			if found && name != "" {
				formData[name] = value
			}
		}
		response = api.NewFormResponse(aw.ID, formData)

	default:
		return fmt.Errorf("unsupported awaitable kind %q", aw.Kind)
	}

	if err := platform.Resume(ctx, response); err != nil {
		return fmt.Errorf("failed to resume process: %w", err)
	}
	return nil
}

// readLine reads one trimmed line from the configured input.
func (a *App) readLine() (string, error) {
	reader := bufio.NewReader(a.stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *App) printPlanEvent(ev api.Event) {
	var payload struct {
		Goal    string   `json:"goal"`
		Actions []string `json:"actions"`
		Cost    float64  `json:"cost"`
	}
	if err := ev.UnmarshalPayload(&payload); err != nil {
		return
	}
	if len(payload.Actions) == 0 {
		fmt.Fprintf(a.stdout, "plan: goal %q satisfied\n", payload.Goal)
		return
	}
	fmt.Fprintf(a.stdout, "plan: goal %q via %s (cost %.1f)\n",
		payload.Goal, strings.Join(payload.Actions, " -> "), payload.Cost)
}

func (a *App) printActionEvent(ev api.Event) {
	var payload struct {
		Action     string `json:"action"`
		DurationMS int64  `json:"duration_ms"`
	}
	if err := ev.UnmarshalPayload(&payload); err != nil {
		return
	}
	fmt.Fprintf(a.stdout, "action: %s (%dms)\n", payload.Action, payload.DurationMS)
}

// printResult renders the final snapshot.
func (a *App) printResult(snap api.ProcessSnapshot, duration time.Duration, opts *runOptions) error {
	if opts.jsonOutput {
		output := map[string]any{
			"process_id":       snap.ID,
			"agent":            snap.AgentName,
			"status":           string(snap.Status),
			"actions_executed": snap.ActionsExecuted,
			"duration":         duration.String(),
		}
		if snap.CompletedGoal != "" {
			output["completed_goal"] = snap.CompletedGoal
		}
		if snap.FailureReason != "" {
			output["reason"] = snap.FailureReason
		}
		if len(snap.BoundNames) > 0 {
			output["bound_names"] = snap.BoundNames
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	fmt.Fprintf(a.stdout, "\nProcess finished\n")
	fmt.Fprintf(a.stdout, "  Process ID: %s\n", snap.ID)
	fmt.Fprintf(a.stdout, "  Status: %s\n", snap.Status)
	fmt.Fprintf(a.stdout, "  Actions executed: %d\n", snap.ActionsExecuted)
	fmt.Fprintf(a.stdout, "  Duration: %s\n", duration.Round(time.Millisecond))

	switch snap.Status {
	case api.StatusCompleted:
		fmt.Fprintf(a.stdout, "  Goal: %s\n", snap.CompletedGoal)
	case api.StatusFailed, api.StatusStuck:
		fmt.Fprintf(a.stdout, "  Reason: %s\n", snap.FailureReason)
	}
	if len(snap.BoundNames) > 0 {
		fmt.Fprintf(a.stdout, "  Bound: %s\n", strings.Join(snap.BoundNames, ", "))
	}

	return nil
}
