// Package api provides the public API for the goap-go platform.
//
// goap-go is a goal-oriented action planning (GOAP) engine: instead of
// scripting an agent step by step, you declare the conditions the world
// can be in, the actions that move between them, and the goals worth
// reaching. The planner searches for the cheapest action sequence whose
// effects satisfy a goal, and the platform executes it one action at a
// time, re-planning after every step.
//
// # Quick Start
//
// Declare actions, bundle them into an agent, and run it:
//
//	// 1. Declare an action
//	draft := api.NewActionBuilder("draft").
//	    Requires("notes", api.True).
//	    Asserts("draft", api.True).
//	    WithCost(2).
//	    WithHandler(func(ctx context.Context, inv *api.Invocation) (api.ActionResult, error) {
//	        return api.ActionResult{Bindings: map[string]any{"draft": text}}, nil
//	    }).
//	    MustBuild()
//
//	// 2. Declare a goal
//	published, _ := api.NewGoal("articlePublished", api.EffectSpec{"published": api.True}, 10)
//
//	// 3. Bundle an agent and run a process
//	journalist := api.NewAgentBuilder("journalist").
//	    WithAction(draft).
//	    WithGoal(published).
//	    MustBuild()
//
//	platform := api.NewPlatform(api.PlatformConfig{})
//	_ = platform.RegisterAgent(journalist)
//	handle, _ := platform.Start(ctx, "journalist", map[string]any{"notes": notes})
//	snapshot, _ := platform.Wait(ctx, handle.ProcessID)
//
// # Conditions
//
// Conditions are tri-state: True, False, or Unknown. A blackboard binding
// named "draft" makes the condition "draft" True; a referenced name with
// no binding is False. Registered condition evaluators may answer Unknown
// when the real answer is expensive, and the planner only forces an
// evaluation when plans genuinely disagree on it.
//
// # Suspension
//
// An action that needs human input returns an awaitable instead of a
// result. The process parks in the Waiting state until a matching
// response arrives through Platform.Resume, then re-plans with the
// response visible to the next invocation.
package api

import (
	"github.com/felixgeelhaar/goap-go/application"
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/awaitable"
	"github.com/felixgeelhaar/goap-go/domain/blackboard"
	"github.com/felixgeelhaar/goap-go/domain/condition"
	"github.com/felixgeelhaar/goap-go/domain/event"
	"github.com/felixgeelhaar/goap-go/domain/goap"
	"github.com/felixgeelhaar/goap-go/domain/process"
	"github.com/felixgeelhaar/goap-go/infrastructure/planner"
)

// Re-export planning domain types.
type (
	// ConditionDetermination is the tri-state evaluation of a condition.
	ConditionDetermination = goap.ConditionDetermination
	// EffectSpec maps condition names to determinations.
	EffectSpec = goap.EffectSpec
	// WorldState is an immutable set of condition determinations.
	WorldState = goap.WorldState
	// Goal is a target world state with a utility value.
	Goal = goap.Goal
	// Plan is an ordered action sequence reaching a goal.
	Plan = goap.Plan
	// System bundles actions and goals for the planner.
	System = goap.System
)

// Condition determinations.
const (
	// True means the condition is known to hold.
	True = goap.True
	// False means the condition is known not to hold.
	False = goap.False
	// Unknown means the condition has not been evaluated yet.
	Unknown = goap.Unknown
)

// Re-export execution types.
type (
	// Action is a registered capability a process can execute.
	Action = action.Action
	// Invocation carries everything an action body needs.
	Invocation = action.Invocation
	// ActionResult is the blackboard delta an action produces.
	ActionResult = action.Result
	// ActionHandler is the function signature for action bodies.
	ActionHandler = action.Handler
	// Agent is a named bundle of actions, goals, and evaluators.
	Agent = agent.Agent
	// Blackboard is the append-only working memory of a process.
	Blackboard = blackboard.Blackboard
	// ConditionEvaluator derives a determination from the blackboard.
	ConditionEvaluator = condition.Evaluator
	// ProcessSnapshot is the externally visible state of a process.
	ProcessSnapshot = process.Snapshot
	// ProcessStatus is a process lifecycle state.
	ProcessStatus = process.Status
	// ProcessFilter narrows process listings.
	ProcessFilter = process.ListFilter
	// Event is a process lifecycle notification.
	Event = event.Event
)

// Event types.
const (
	EventProcessStarted   = event.TypeProcessStarted
	EventProcessSuspended = event.TypeProcessSuspended
	EventProcessResumed   = event.TypeProcessResumed
	EventProcessCompleted = event.TypeProcessCompleted
	EventProcessFailed    = event.TypeProcessFailed
	EventProcessStuck     = event.TypeProcessStuck
	EventProcessKilled    = event.TypeProcessKilled
	EventPlanComputed     = event.TypePlanComputed
	EventActionExecuted   = event.TypeActionExecuted
)

// Process lifecycle states.
const (
	StatusNotStarted = process.StatusNotStarted
	StatusRunning    = process.StatusRunning
	StatusWaiting    = process.StatusWaiting
	StatusCompleted  = process.StatusCompleted
	StatusFailed     = process.StatusFailed
	StatusStuck      = process.StatusStuck
	StatusKilled     = process.StatusKilled
)

// Re-export human-in-the-loop types.
type (
	// Awaitable is a pending request for external input.
	Awaitable = awaitable.Awaitable
	// AwaitableKind is the closed set of awaitable variants.
	AwaitableKind = awaitable.Kind
	// AwaitableResponse resumes exactly one suspended process.
	AwaitableResponse = awaitable.Response
)

// Awaitable kinds.
const (
	// KindConfirmation asks a human to accept or reject an action.
	KindConfirmation = awaitable.KindConfirmation
	// KindFormSubmission asks a human for structured form data.
	KindFormSubmission = awaitable.KindFormSubmission
)

// Re-export the platform.
type (
	// Platform runs agent processes.
	Platform = application.Platform
	// PlatformConfig configures the platform's components.
	PlatformConfig = application.Config
	// ProcessHandle identifies a started process.
	ProcessHandle = application.Handle
	// Planner is the optimizing GOAP planner.
	Planner = planner.OptimizingPlanner
)

// Stuck reasons reported in a snapshot's failure reason.
const (
	// ReasonPlanNotFound means no action sequence reaches any goal.
	ReasonPlanNotFound = application.ReasonPlanNotFound
	// ReasonBudgetExceeded means the process hit its action budget.
	ReasonBudgetExceeded = application.ReasonBudgetExceeded
)

// NewPlatform creates a platform; unset components fall back to in-memory
// defaults.
func NewPlatform(config PlatformConfig) *Platform {
	return application.NewPlatform(config)
}

// NewPlanner creates the optimizing planner.
func NewPlanner(opts ...planner.Option) *Planner {
	return planner.New(opts...)
}

// NewGoal creates a goal over the given preconditions.
func NewGoal(name string, preconditions EffectSpec, value float64) (Goal, error) {
	return goap.NewGoal(name, preconditions, value)
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return blackboard.New()
}

// NewConfirmation creates a confirmation awaitable.
func NewConfirmation(message string, payload any) (*Awaitable, error) {
	return awaitable.NewConfirmation(message, payload)
}

// NewFormSubmission creates a form-submission awaitable.
func NewFormSubmission(message string, payload any) (*Awaitable, error) {
	return awaitable.NewFormSubmission(message, payload)
}

// NewConfirmationResponse answers a confirmation awaitable.
func NewConfirmationResponse(awaitableID string, accepted bool) AwaitableResponse {
	return awaitable.NewConfirmationResponse(awaitableID, accepted)
}

// NewFormResponse answers a form-submission awaitable.
func NewFormResponse(awaitableID string, formData map[string]any) AwaitableResponse {
	return awaitable.NewFormResponse(awaitableID, formData)
}
