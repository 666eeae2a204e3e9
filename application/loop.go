package application

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/awaitable"
	"github.com/felixgeelhaar/goap-go/domain/event"
	"github.com/felixgeelhaar/goap-go/domain/goap"
	"github.com/felixgeelhaar/goap-go/domain/process"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/statemachine"
	"github.com/felixgeelhaar/goap-go/infrastructure/worldstate"
)

// Stuck reasons. The loop stops in both cases; the reason tells a caller
// whether new capabilities might help (no plan) or the process looped until
// its budget ran out.
const (
	ReasonPlanNotFound   = "no plan to any goal"
	ReasonBudgetExceeded = "action budget exceeded"
)

// runLoop is the process execution loop: derive the world state from the
// blackboard, plan, execute the first action, merge its results, and
// re-plan from scratch. It is the single writer of the process aggregate.
// Every failure is recovered here into a terminal status; a crashing action
// never takes down the platform.
func (p *Platform) runLoop(ctx context.Context, h *Handle, ag *agent.Agent) {
	defer close(h.done)

	proc := h.proc
	_ = h.interp.Transition(process.StatusRunning, statemachine.TransitionPayload{})
	p.persist(proc)
	p.publish(proc.ID, event.TypeProcessStarted, map[string]any{"agent": proc.AgentName})
	p.metrics.ProcessStarted(ctx, proc.AgentName)

	logging.Info().
		Add(logging.ProcessID(proc.ID)).
		Add(logging.Agent(proc.AgentName)).
		Msg("process started")

	system := ag.System()
	referenced := referencedNames(system)
	var response map[string]any

	for {
		if ctx.Err() != nil {
			p.kill(h)
			return
		}

		det := worldstate.New(proc.Blackboard, ag.Conditions(), referenced)
		planStart := time.Now()
		plan, err := p.planner.BestValuePlanToAnyGoal(ctx, det, system)
		if err != nil {
			if ctx.Err() != nil {
				p.kill(h)
				return
			}
			p.fail(h, fmt.Sprintf("planning failed: %v", err))
			return
		}
		p.metrics.RecordPlan(ctx, proc.AgentName, plan != nil, forcedCount(plan), time.Since(planStart))

		if plan == nil {
			p.stick(h, ReasonPlanNotFound)
			return
		}

		p.publish(proc.ID, event.TypePlanComputed, map[string]any{
			"goal":    plan.Goal.Name,
			"actions": plan.ActionNames(),
			"cost":    plan.Cost(),
		})
		logging.Debug().
			Add(logging.ProcessID(proc.ID)).
			Add(logging.Goal(plan.Goal.Name)).
			Add(logging.PlanCost(plan.Cost())).
			Add(logging.PlanLength(len(plan.Actions))).
			Msg("plan computed")

		if plan.Empty() {
			p.complete(h, plan.Goal.Name)
			return
		}
		if proc.BudgetExhausted() {
			p.stick(h, ReasonBudgetExceeded)
			return
		}

		name := plan.Actions[0].Name
		act, ok := ag.Action(name)
		if !ok {
			p.fail(h, fmt.Sprintf("planned action %q has no executable registration", name))
			return
		}

		inv := &action.Invocation{
			ProcessID:  proc.ID,
			Blackboard: proc.Blackboard,
			Response:   response,
		}
		response = nil

		result, err := p.executor.Execute(ctx, act, inv)
		p.metrics.RecordAction(ctx, proc.AgentName, name, err, result.Duration)
		if err != nil {
			if ctx.Err() != nil {
				p.kill(h)
				return
			}
			p.fail(h, fmt.Sprintf("action %q: %v", name, err))
			return
		}

		if result.Suspends() {
			resumed, delivery := p.suspend(ctx, h, result.Awaitable)
			if !resumed {
				return
			}
			response = responsePayload(delivery)
			continue
		}

		h.bbMu.Lock()
		for _, obj := range result.Output {
			proc.Blackboard.Add(obj)
		}
		for bindName, obj := range result.Bindings {
			proc.Blackboard.Bind(bindName, obj)
		}
		proc.RecordAction(plan)
		h.bbMu.Unlock()

		p.persist(proc)
		p.publish(proc.ID, event.TypeActionExecuted, map[string]any{
			"action":      name,
			"duration_ms": result.Duration.Milliseconds(),
		})
		logging.Debug().
			Add(logging.ProcessID(proc.ID)).
			Add(logging.ActionName(name)).
			Add(logging.Duration(result.Duration)).
			Add(logging.ActionsExecuted(proc.ActionsExecuted)).
			Msg("action executed")
	}
}

// suspend parks the process on the awaitable until a response arrives or
// the process is killed. It reports whether the loop should continue.
func (p *Platform) suspend(ctx context.Context, h *Handle, aw *awaitable.Awaitable) (bool, resumeDelivery) {
	proc := h.proc
	aw.ProcessID = proc.ID

	if err := p.awaitables.Save(context.Background(), aw); err != nil {
		p.fail(h, fmt.Sprintf("persist awaitable: %v", err))
		return false, resumeDelivery{}
	}

	_ = h.interp.Transition(process.StatusWaiting, statemachine.TransitionPayload{Reason: aw.Message})
	p.persist(proc)
	p.publish(proc.ID, event.TypeProcessSuspended, map[string]any{
		"awaitable_id": aw.ID,
		"kind":         string(aw.Kind),
		"message":      aw.Message,
	})
	logging.Info().
		Add(logging.ProcessID(proc.ID)).
		Add(logging.AwaitableID(aw.ID)).
		Add(logging.Str("kind", string(aw.Kind))).
		Msg("process suspended")

	select {
	case <-ctx.Done():
		// Killed while waiting: the awaitable dies with the process, so a
		// later response is rejected as unknown.
		_ = p.awaitables.DeleteForProcess(context.Background(), proc.ID)
		p.kill(h)
		return false, resumeDelivery{}

	case delivery := <-h.resume:
		h.bbMu.Lock()
		for name, value := range delivery.response.FormData {
			proc.Blackboard.Bind(name, value)
		}
		h.bbMu.Unlock()

		_ = h.interp.Transition(process.StatusRunning, statemachine.TransitionPayload{})
		p.persist(proc)
		p.publish(proc.ID, event.TypeProcessResumed, map[string]any{
			"awaitable_id": delivery.aw.ID,
		})
		logging.Info().
			Add(logging.ProcessID(proc.ID)).
			Add(logging.AwaitableID(delivery.aw.ID)).
			Msg("process resumed")
		return true, delivery
	}
}

// Terminal transitions. Each syncs the state machine, persists the final
// snapshot, publishes the lifecycle event, and counts the process finished.

func (p *Platform) complete(h *Handle, goalName string) {
	_ = h.interp.Transition(process.StatusCompleted, statemachine.TransitionPayload{Goal: goalName})
	p.finish(h, event.TypeProcessCompleted, map[string]any{"goal": goalName})

	logging.Info().
		Add(logging.ProcessID(h.proc.ID)).
		Add(logging.Goal(goalName)).
		Add(logging.ActionsExecuted(h.proc.ActionsExecuted)).
		Add(logging.Duration(h.proc.Duration())).
		Msg("process completed")
}

func (p *Platform) fail(h *Handle, reason string) {
	_ = h.interp.Transition(process.StatusFailed, statemachine.TransitionPayload{Reason: reason})
	p.finish(h, event.TypeProcessFailed, map[string]any{"reason": reason})

	logging.Error().
		Add(logging.ProcessID(h.proc.ID)).
		Add(logging.Reason(reason)).
		Msg("process failed")
}

func (p *Platform) stick(h *Handle, reason string) {
	_ = h.interp.Transition(process.StatusStuck, statemachine.TransitionPayload{Reason: reason})
	p.finish(h, event.TypeProcessStuck, map[string]any{"reason": reason})

	logging.Warn().
		Add(logging.ProcessID(h.proc.ID)).
		Add(logging.Reason(reason)).
		Msg("process stuck")
}

func (p *Platform) kill(h *Handle) {
	_ = h.interp.Transition(process.StatusKilled, statemachine.TransitionPayload{Reason: "killed"})
	p.finish(h, event.TypeProcessKilled, nil)

	logging.Info().
		Add(logging.ProcessID(h.proc.ID)).
		Msg("process killed")
}

func (p *Platform) finish(h *Handle, eventType event.Type, payload any) {
	p.persist(h.proc)
	p.publish(h.proc.ID, eventType, payload)
	p.metrics.ProcessFinished(context.Background(), h.proc.AgentName, string(h.proc.Status))
}

// persist writes the current snapshot. Persistence runs on a background
// context so a killed loop still records its final state.
func (p *Platform) persist(proc *process.Process) {
	if err := p.store.Update(context.Background(), proc.Snapshot()); err != nil {
		logging.Warn().
			Add(logging.ProcessID(proc.ID)).
			Add(logging.ErrorField(err)).
			Msg("failed to persist process snapshot")
	}
}

// referencedNames collects every condition name the system's goals and
// actions mention, so absent blackboard bindings surface as False instead
// of silently missing.
func referencedNames(system goap.System) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(spec goap.EffectSpec) {
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
	for _, a := range system.Actions {
		add(a.Preconditions)
		add(a.Effects)
	}
	return names
}

// responsePayload flattens an awaitable response for the next action
// invocation.
func responsePayload(d resumeDelivery) map[string]any {
	payload := map[string]any{
		"awaitable_id": d.aw.ID,
		"kind":         string(d.aw.Kind),
	}
	if d.response.Accepted != nil {
		payload["accepted"] = *d.response.Accepted
	}
	if d.response.FormData != nil {
		payload["form_data"] = d.response.FormData
	}
	return payload
}

func forcedCount(plan *goap.Plan) int {
	if plan == nil {
		return 0
	}
	return plan.ForcedEvaluations
}
