// Package telemetry provides OpenTelemetry metrics for the planning runtime.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/felixgeelhaar/goap-go"

// Metrics records planner and process metrics. A nil *Metrics is valid and
// records nothing, so callers never need to branch on whether telemetry is
// enabled.
type Metrics struct {
	plansComputed     metric.Int64Counter
	planDuration      metric.Float64Histogram
	forcedEvaluations metric.Int64Counter
	actionsExecuted   metric.Int64Counter
	actionDuration    metric.Float64Histogram
	activeProcesses   metric.Int64UpDownCounter
	processesFinished metric.Int64Counter
}

// NewMetrics creates the metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	plansComputed, err := meter.Int64Counter("goap.plans.computed",
		metric.WithDescription("Number of plans computed"))
	if err != nil {
		return nil, err
	}

	planDuration, err := meter.Float64Histogram("goap.plan.duration",
		metric.WithDescription("Plan computation duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	forcedEvaluations, err := meter.Int64Counter("goap.conditions.evaluated",
		metric.WithDescription("Number of unknown conditions the planner had to evaluate"))
	if err != nil {
		return nil, err
	}

	actionsExecuted, err := meter.Int64Counter("goap.actions.executed",
		metric.WithDescription("Number of actions executed"))
	if err != nil {
		return nil, err
	}

	actionDuration, err := meter.Float64Histogram("goap.action.duration",
		metric.WithDescription("Action execution duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	activeProcesses, err := meter.Int64UpDownCounter("goap.processes.active",
		metric.WithDescription("Number of processes currently running or waiting"))
	if err != nil {
		return nil, err
	}

	processesFinished, err := meter.Int64Counter("goap.processes.finished",
		metric.WithDescription("Number of processes that reached a terminal status"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		plansComputed:     plansComputed,
		planDuration:      planDuration,
		forcedEvaluations: forcedEvaluations,
		actionsExecuted:   actionsExecuted,
		actionDuration:    actionDuration,
		activeProcesses:   activeProcesses,
		processesFinished: processesFinished,
	}, nil
}

// RecordPlan records a completed planning pass.
func (m *Metrics) RecordPlan(ctx context.Context, agentName string, found bool, forced int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("agent", agentName),
		attribute.Bool("found", found),
	)
	m.plansComputed.Add(ctx, 1, attrs)
	m.planDuration.Record(ctx, duration.Seconds(), attrs)
	if forced > 0 {
		m.forcedEvaluations.Add(ctx, int64(forced), metric.WithAttributes(
			attribute.String("agent", agentName)))
	}
}

// RecordAction records an executed action.
func (m *Metrics) RecordAction(ctx context.Context, agentName, actionName string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("agent", agentName),
		attribute.String("action", actionName),
		attribute.Bool("success", err == nil),
	)
	m.actionsExecuted.Add(ctx, 1, attrs)
	m.actionDuration.Record(ctx, duration.Seconds(), attrs)
}

// ProcessStarted records a process entering the runtime.
func (m *Metrics) ProcessStarted(ctx context.Context, agentName string) {
	if m == nil {
		return
	}
	m.activeProcesses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent", agentName)))
}

// ProcessFinished records a process reaching a terminal status.
func (m *Metrics) ProcessFinished(ctx context.Context, agentName, status string) {
	if m == nil {
		return
	}
	m.activeProcesses.Add(ctx, -1, metric.WithAttributes(
		attribute.String("agent", agentName)))
	m.processesFinished.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent", agentName),
		attribute.String("status", status)))
}
