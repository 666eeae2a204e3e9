package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/condition"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// fakeDeterminer serves a fixed world state and scripted forced-evaluation
// results, recording every forced call.
type fakeDeterminer struct {
	state       goap.WorldState
	values      map[string]goap.ConditionDetermination
	hints       map[string]float64
	forcedCalls []string
	evalErr     error
}

func (f *fakeDeterminer) DetermineWorldState(_ context.Context) (goap.WorldState, error) {
	return f.state, nil
}

func (f *fakeDeterminer) DetermineCondition(_ context.Context, name string) (goap.ConditionDetermination, error) {
	f.forcedCalls = append(f.forcedCalls, name)
	if f.evalErr != nil {
		return goap.Unknown, f.evalErr
	}
	value, ok := f.values[name]
	if !ok {
		return goap.Unknown, fmt.Errorf("no scripted value for %q", name)
	}
	return value, nil
}

func (f *fakeDeterminer) CostHint(name string) float64 {
	return f.hints[name]
}

func act(t *testing.T, name string, pre, eff goap.EffectSpec, cost float64) goap.Action {
	t.Helper()
	a, err := goap.NewAction(name, pre, eff, cost, 0)
	if err != nil {
		t.Fatalf("NewAction(%q) error: %v", name, err)
	}
	return a
}

func goal(t *testing.T, name string, pre goap.EffectSpec, value float64) goap.Goal {
	t.Helper()
	g, err := goap.NewGoal(name, pre, value)
	if err != nil {
		t.Fatalf("NewGoal(%q) error: %v", name, err)
	}
	return g
}

func assertPlanActions(t *testing.T, plan *goap.Plan, want ...string) {
	t.Helper()
	if plan == nil {
		t.Fatalf("plan is nil, want actions %v", want)
	}
	got := plan.ActionNames()
	if len(got) != len(want) {
		t.Fatalf("plan actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("plan actions = %v, want %v", got, want)
		}
	}
}

func TestPlanToGoal_SimpleChain(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	actions := []goap.Action{
		act(t, "toBeliever", nil, goap.EffectSpec{"isBeliever": goap.True}, 1),
		act(t, "findNewsStories", goap.EffectSpec{"isBeliever": goap.True}, goap.EffectSpec{"relevantNewsStories": goap.True}, 1),
	}
	g := goal(t, "newsGathered", goap.EffectSpec{"relevantNewsStories": goap.True}, 10)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	assertPlanActions(t, plan, "toBeliever", "findNewsStories")
	if plan.Cost() != 2 {
		t.Errorf("Cost() = %v, want 2", plan.Cost())
	}
	if plan.NetValue() != 8 {
		t.Errorf("NetValue() = %v, want 8", plan.NetValue())
	}
}

func TestPlanToGoal_Determinism(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	// Two equal-cost plans exist; the one discovered first under input
	// ordering must win on every call.
	actions := []goap.Action{
		act(t, "routeA", nil, goap.EffectSpec{"arrived": goap.True}, 3),
		act(t, "routeB", nil, goap.EffectSpec{"arrived": goap.True}, 3),
	}
	g := goal(t, "arrive", goap.EffectSpec{"arrived": goap.True}, 1)

	p := New()
	first, err := p.PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := p.PlanToGoal(context.Background(), det, actions, g)
		if err != nil {
			t.Fatalf("PlanToGoal() error on call %d: %v", i, err)
		}
		if !first.SameActions(again) {
			t.Fatalf("call %d returned %v, first call returned %v", i, again.ActionNames(), first.ActionNames())
		}
	}
	assertPlanActions(t, first, "routeA")
}

func TestPlanToGoal_Optimality(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	actions := []goap.Action{
		act(t, "teleport", nil, goap.EffectSpec{"atCastle": goap.True}, 10),
		act(t, "saddleHorse", nil, goap.EffectSpec{"horseSaddled": goap.True}, 2),
		act(t, "ride", goap.EffectSpec{"horseSaddled": goap.True}, goap.EffectSpec{"atCastle": goap.True}, 3),
	}
	g := goal(t, "reachCastle", goap.EffectSpec{"atCastle": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	assertPlanActions(t, plan, "saddleHorse", "ride")
	if plan.Cost() != 5 {
		t.Errorf("Cost() = %v, want 5 (cheaper than the 10-cost teleport)", plan.Cost())
	}
}

func TestPlanToGoal_IrrelevantActionsNeverAppear(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	actions := []goap.Action{
		act(t, "gpt-4o-mini-researcher", nil, goap.EffectSpec{"miniResearchReport": goap.True}, 1),
		act(t, "claude-3-5-haiku-researcher", nil, goap.EffectSpec{"haikuResearchReport": goap.True}, 1),
		act(t, "reportMerger", goap.EffectSpec{"miniResearchReport": goap.True, "haikuResearchReport": goap.True}, goap.EffectSpec{"mergedReport": goap.True}, 1),
		act(t, "ingest-MarketableProduct", nil, goap.EffectSpec{"marketableProduct": goap.True}, 1),
		act(t, "toBeliever", nil, goap.EffectSpec{"isBeliever": goap.True}, 1),
		act(t, "findNewsStories", goap.EffectSpec{"isBeliever": goap.True}, goap.EffectSpec{"relevantNewsStories": goap.True}, 1),
	}
	g := goal(t, "newsGathered", goap.EffectSpec{"relevantNewsStories": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	assertPlanActions(t, plan, "toBeliever", "findNewsStories")

	unrelated := map[string]bool{
		"gpt-4o-mini-researcher":      true,
		"claude-3-5-haiku-researcher": true,
		"reportMerger":                true,
		"ingest-MarketableProduct":    true,
	}
	for _, name := range plan.ActionNames() {
		if unrelated[name] {
			t.Errorf("unrelated action %q appears in the winning plan", name)
		}
	}
}

func TestPlanToGoal_UnknownConditionLaziness(t *testing.T) {
	// enemyDead is unknown and inside the goal's dependency set, but a
	// cheaper plan satisfies the goal regardless of its value, so the
	// expensive evaluation must never run.
	det := &fakeDeterminer{
		state: goap.NewWorldState(map[string]goap.ConditionDetermination{
			"legalPeril": goap.False,
			"enemyDead":  goap.Unknown,
		}),
	}
	actions := []goap.Action{
		act(t, "negotiate", goap.EffectSpec{"legalPeril": goap.False}, goap.EffectSpec{"enemyNeutralized": goap.True}, 1),
		act(t, "celebrate", goap.EffectSpec{"enemyDead": goap.True}, goap.EffectSpec{"enemyNeutralized": goap.True}, 5),
	}
	g := goal(t, "peace", goap.EffectSpec{"enemyNeutralized": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	assertPlanActions(t, plan, "negotiate")

	if len(det.forcedCalls) != 0 {
		t.Errorf("DetermineCondition called %v, want no calls", det.forcedCalls)
	}
	if plan.ForcedEvaluations != 0 {
		t.Errorf("ForcedEvaluations = %d, want 0", plan.ForcedEvaluations)
	}
}

func TestPlanToGoal_ForcedEvaluation(t *testing.T) {
	// With enemyDead unknown no action applies, but forcing it true or
	// false yields different plans, so exactly one evaluation must happen
	// and the final plan must reflect the concrete value.
	det := &fakeDeterminer{
		state: goap.NewWorldState(map[string]goap.ConditionDetermination{
			"enemyDead": goap.Unknown,
		}),
		values: map[string]goap.ConditionDetermination{
			"enemyDead": goap.False,
		},
	}
	actions := []goap.Action{
		act(t, "celebrate", goap.EffectSpec{"enemyDead": goap.True}, goap.EffectSpec{"enemyNeutralized": goap.True}, 1),
		act(t, "attack", goap.EffectSpec{"enemyDead": goap.False}, goap.EffectSpec{"enemyDead": goap.True}, 1),
	}
	g := goal(t, "victory", goap.EffectSpec{"enemyNeutralized": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	assertPlanActions(t, plan, "attack", "celebrate")

	if len(det.forcedCalls) != 1 || det.forcedCalls[0] != "enemyDead" {
		t.Errorf("DetermineCondition calls = %v, want exactly [enemyDead]", det.forcedCalls)
	}
	if plan.ForcedEvaluations != 1 {
		t.Errorf("ForcedEvaluations = %d, want 1", plan.ForcedEvaluations)
	}
	if got := plan.World.Determination("enemyDead"); got != goap.False {
		t.Errorf("plan world enemyDead = %v, want the concrete False, not stale Unknown", got)
	}
}

func TestPlanToGoal_MultipleUnknownsCheapestFirst(t *testing.T) {
	// Both unknowns could change the plan; the cheaper hint must be
	// evaluated first.
	det := &fakeDeterminer{
		state: goap.NewWorldState(map[string]goap.ConditionDetermination{
			"doorOpen":  goap.Unknown,
			"alarmSet":  goap.Unknown,
			"insideLab": goap.False,
		}),
		values: map[string]goap.ConditionDetermination{
			"doorOpen": goap.True,
			"alarmSet": goap.False,
		},
		hints: map[string]float64{
			"doorOpen": 5,
			"alarmSet": 1,
		},
	}
	actions := []goap.Action{
		act(t, "disarmAlarm", goap.EffectSpec{"alarmSet": goap.True}, goap.EffectSpec{"alarmSet": goap.False}, 1),
		act(t, "enter", goap.EffectSpec{"doorOpen": goap.True, "alarmSet": goap.False}, goap.EffectSpec{"insideLab": goap.True}, 1),
		act(t, "pickLock", goap.EffectSpec{"doorOpen": goap.False}, goap.EffectSpec{"doorOpen": goap.True}, 2),
	}
	g := goal(t, "infiltrate", goap.EffectSpec{"insideLab": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	assertPlanActions(t, plan, "enter")

	if len(det.forcedCalls) != 2 {
		t.Fatalf("DetermineCondition calls = %v, want 2 calls", det.forcedCalls)
	}
	if det.forcedCalls[0] != "alarmSet" {
		t.Errorf("first forced call = %q, want alarmSet (cheapest hint)", det.forcedCalls[0])
	}
	if plan.ForcedEvaluations != 2 {
		t.Errorf("ForcedEvaluations = %d, want 2", plan.ForcedEvaluations)
	}
}

func TestPlanToGoal_UnreachableGoalWithUnknownSkipsEvaluation(t *testing.T) {
	// keyFound is concretely False, so celebrate can never apply no matter
	// what mysterySolved turns out to be. The goal is unreachable for every
	// assignment of the unknown, and the expensive evaluation must be
	// skipped: nil plan, nil error, zero forced calls.
	det := &fakeDeterminer{
		state: goap.NewWorldState(map[string]goap.ConditionDetermination{
			"mysterySolved": goap.Unknown,
			"keyFound":      goap.False,
		}),
		evalErr: errors.New("oracle unreachable"),
	}
	actions := []goap.Action{
		act(t, "celebrate",
			goap.EffectSpec{"mysterySolved": goap.True, "keyFound": goap.True},
			goap.EffectSpec{"won": goap.True}, 1),
	}
	g := goal(t, "win", goap.EffectSpec{"won": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error = %v, want nil (no path is not an error)", err)
	}
	if plan != nil {
		t.Errorf("PlanToGoal() = %v, want nil plan", plan.ActionNames())
	}
	if len(det.forcedCalls) != 0 {
		t.Errorf("DetermineCondition calls = %v, want none", det.forcedCalls)
	}
}

func TestPlanToGoal_UnreachableGoalReturnsNil(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	actions := []goap.Action{
		act(t, "dig", nil, goap.EffectSpec{"holeDug": goap.True}, 1),
	}
	g := goal(t, "fly", goap.EffectSpec{"airborne": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, actions, g)
	if err != nil {
		t.Errorf("PlanToGoal() error = %v, want nil (no path is not an error)", err)
	}
	if plan != nil {
		t.Errorf("PlanToGoal() = %v, want nil plan", plan.ActionNames())
	}
}

func TestPlanToGoal_SatisfiedGoalReturnsEmptyPlan(t *testing.T) {
	det := &fakeDeterminer{
		state: goap.NewWorldState(map[string]goap.ConditionDetermination{
			"arrived": goap.True,
		}),
	}
	g := goal(t, "arrive", goap.EffectSpec{"arrived": goap.True}, 1)

	plan, err := New().PlanToGoal(context.Background(), det, nil, g)
	if err != nil {
		t.Fatalf("PlanToGoal() error: %v", err)
	}
	if plan == nil {
		t.Fatal("PlanToGoal() = nil for already-satisfied goal, want empty plan")
	}
	if !plan.Empty() {
		t.Errorf("plan actions = %v, want none", plan.ActionNames())
	}
}

func TestPlanToGoal_EvaluationErrorSurfaces(t *testing.T) {
	det := &fakeDeterminer{
		state: goap.NewWorldState(map[string]goap.ConditionDetermination{
			"enemyDead": goap.Unknown,
		}),
		evalErr: errors.New("oracle unreachable"),
	}
	actions := []goap.Action{
		act(t, "celebrate", goap.EffectSpec{"enemyDead": goap.True}, goap.EffectSpec{"done": goap.True}, 1),
	}
	g := goal(t, "party", goap.EffectSpec{"done": goap.True}, 1)

	_, err := New().PlanToGoal(context.Background(), det, actions, g)
	if !errors.Is(err, condition.ErrEvaluationFailed) {
		t.Errorf("PlanToGoal() err = %v, want %v", err, condition.ErrEvaluationFailed)
	}
}

func TestBestValuePlanToAnyGoal(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	system := goap.System{
		Actions: []goap.Action{
			act(t, "writeStory", nil, goap.EffectSpec{"storyWritten": goap.True}, 2),
			act(t, "brewCoffee", nil, goap.EffectSpec{"coffeeBrewed": goap.True}, 1),
		},
		Goals: []goap.Goal{
			goal(t, "caffeinated", goap.EffectSpec{"coffeeBrewed": goap.True}, 2),
			goal(t, "published", goap.EffectSpec{"storyWritten": goap.True}, 10),
		},
	}

	plan, err := New().BestValuePlanToAnyGoal(context.Background(), det, system)
	if err != nil {
		t.Fatalf("BestValuePlanToAnyGoal() error: %v", err)
	}
	if plan == nil {
		t.Fatal("BestValuePlanToAnyGoal() = nil, want a plan")
	}
	if plan.Goal.Name != "published" {
		t.Errorf("best goal = %q, want published (net value 8 beats 1)", plan.Goal.Name)
	}
}

func TestPlansToGoals_SkipsUnreachable(t *testing.T) {
	det := &fakeDeterminer{state: goap.EmptyWorldState()}
	system := goap.System{
		Actions: []goap.Action{
			act(t, "brewCoffee", nil, goap.EffectSpec{"coffeeBrewed": goap.True}, 1),
		},
		Goals: []goap.Goal{
			goal(t, "caffeinated", goap.EffectSpec{"coffeeBrewed": goap.True}, 1),
			goal(t, "fly", goap.EffectSpec{"airborne": goap.True}, 100),
		},
	}

	plans, err := New().PlansToGoals(context.Background(), det, system)
	if err != nil {
		t.Fatalf("PlansToGoals() error: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("PlansToGoals() returned %d plans, want 1", len(plans))
	}
	if plans[0].Goal.Name != "caffeinated" {
		t.Errorf("plan goal = %q, want caffeinated", plans[0].Goal.Name)
	}
}
