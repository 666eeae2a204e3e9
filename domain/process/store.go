package process

import "context"

// Snapshot is the serializable view of a process used for persistence and
// status reporting. The live Process (with its blackboard and goroutine) is
// owned by the execution loop; stores keep snapshots only.
type Snapshot struct {
	ID              string   `json:"id"`
	AgentName       string   `json:"agent_name"`
	Status          Status   `json:"status"`
	PlanActions     []string `json:"plan_actions,omitempty"`
	ActionsExecuted int      `json:"actions_executed"`
	MaxActions      int      `json:"max_actions"`
	ParentID        string   `json:"parent_id,omitempty"`
	FailureReason   string   `json:"failure_reason,omitempty"`
	CompletedGoal   string   `json:"completed_goal,omitempty"`
	BoundNames      []string `json:"bound_names,omitempty"`
	ObjectCount     int      `json:"object_count"`
}

// Snapshot captures the process's current externally visible state.
func (p *Process) Snapshot() Snapshot {
	s := Snapshot{
		ID:              p.ID,
		AgentName:       p.AgentName,
		Status:          p.Status,
		ActionsExecuted: p.ActionsExecuted,
		MaxActions:      p.MaxActions,
		ParentID:        p.ParentID,
		FailureReason:   p.FailureReason,
		CompletedGoal:   p.CompletedGoal,
	}
	if p.CurrentPlan != nil {
		s.PlanActions = p.CurrentPlan.ActionNames()
	}
	if p.Blackboard != nil {
		s.BoundNames = p.Blackboard.Names()
		s.ObjectCount = p.Blackboard.Len()
	}
	return s
}

// Store defines the interface for process snapshot persistence.
// Implementations may be in-memory, Redis, or any other backend.
type Store interface {
	// Save persists a new process snapshot.
	Save(ctx context.Context, snap Snapshot) error

	// Get retrieves a snapshot by process id.
	Get(ctx context.Context, id string) (Snapshot, error)

	// Update replaces an existing snapshot.
	Update(ctx context.Context, snap Snapshot) error

	// Delete removes a snapshot.
	Delete(ctx context.Context, id string) error

	// List returns snapshots matching the filter.
	List(ctx context.Context, filter ListFilter) ([]Snapshot, error)
}

// ListFilter specifies criteria for listing processes.
type ListFilter struct {
	// Statuses filters by status (empty means all).
	Statuses []Status

	// AgentName filters by agent (empty means all).
	AgentName string

	// ParentID filters children of a process.
	ParentID string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip for pagination.
	Offset int
}

// Matches reports whether a snapshot passes the filter.
func (f ListFilter) Matches(s Snapshot) bool {
	if f.AgentName != "" && s.AgentName != f.AgentName {
		return false
	}
	if f.ParentID != "" && s.ParentID != f.ParentID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, st := range f.Statuses {
			if s.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
