package planner

import (
	"container/heap"

	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// node is a search state: the world reached so far and the action path that
// produced it. Nodes form a parent chain so paths are reconstructed without
// copying slices on every expansion.
type node struct {
	state  goap.WorldState
	action *goap.Action // action that produced this node, nil at the root
	parent *node
	cost   float64
	seq    int // insertion order, breaks cost ties deterministically
	index  int // heap bookkeeping
}

// path reconstructs the action sequence from the root to this node.
func (n *node) path() []goap.Action {
	var depth int
	for cur := n; cur.action != nil; cur = cur.parent {
		depth++
	}
	actions := make([]goap.Action, depth)
	for cur := n; cur.action != nil; cur = cur.parent {
		depth--
		actions[depth] = *cur.action
	}
	return actions
}

// frontier is a min-heap ordered by (cost, seq). The seq tie-break makes the
// search deterministic: among equal-cost candidates the first-discovered node
// under the stable action ordering wins.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	n := x.(*node)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// search runs a uniform-cost search over world states. A transition applies
// an action whose preconditions the current state satisfies; effects
// overwrite matching conditions. Returns the cheapest action sequence whose
// resulting state satisfies the goal, or nil when the search space is
// exhausted (or the node budget runs out) without reaching it.
func search(start goap.WorldState, actions []goap.Action, goal goap.Goal, maxNodes int) []goap.Action {
	root := &node{state: start}
	if goal.SatisfiedBy(start) {
		return []goap.Action{}
	}

	open := &frontier{}
	heap.Init(open)
	heap.Push(open, root)

	// best known cost per canonical state
	visited := map[string]float64{start.Key(): 0}

	seq := 0
	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)

		if goal.SatisfiedBy(cur.state) {
			return cur.path()
		}

		expanded++
		if expanded > maxNodes {
			return nil
		}

		for i := range actions {
			a := &actions[i]
			if !a.ApplicableTo(cur.state) {
				continue
			}
			next := cur.state.Apply(a.Effects)
			cost := cur.cost + a.Cost

			key := next.Key()
			if best, seen := visited[key]; seen && best <= cost {
				continue
			}
			visited[key] = cost

			seq++
			heap.Push(open, &node{
				state:  next,
				action: a,
				parent: cur,
				cost:   cost,
				seq:    seq,
			})
		}
	}
	return nil
}
