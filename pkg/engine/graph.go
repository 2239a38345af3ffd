package engine

import (
	"sort"

	"github.com/google/uuid"
)

// TriggerType enumerates how a transition fires.
type TriggerType string

const (
	TriggerIntent      TriggerType = "intent"
	TriggerKeyword     TriggerType = "keyword"
	TriggerCondition   TriggerType = "condition"
	TriggerButtonClick TriggerType = "button_click"
	TriggerAuto        TriggerType = "auto"
)

// Transition is a directed, conditioned edge between two nodes of the
// same workflow.
type Transition struct {
	ID         uuid.UUID
	FromNodeID uuid.UUID
	ToNodeID   uuid.UUID
	Trigger    TriggerType
	Value      string
	Condition  string
	Priority   int
}

// Workflow is the authored conversation graph header. Immutable for the
// duration of a turn.
type Workflow struct {
	ID          uuid.UUID
	BotID       uuid.UUID
	Name        string
	StartNodeID uuid.UUID
	Active      bool
}

// Graph is a read-only snapshot of a workflow: its nodes indexed by id and
// outgoing transitions pre-sorted by priority descending, ties broken by
// ascending transition id so equal-priority edges resolve deterministically.
type Graph struct {
	Workflow Workflow

	nodes    map[uuid.UUID]Node
	outgoing map[uuid.UUID][]Transition
}

// NewGraph builds the node/transition index for a workflow snapshot.
func NewGraph(workflow Workflow, nodes []Node, transitions []Transition) *Graph {
	g := &Graph{
		Workflow: workflow,
		nodes:    make(map[uuid.UUID]Node, len(nodes)),
		outgoing: make(map[uuid.UUID][]Transition),
	}
	for _, n := range nodes {
		g.nodes[n.ID()] = n
	}
	for _, t := range transitions {
		g.outgoing[t.FromNodeID] = append(g.outgoing[t.FromNodeID], t)
	}
	for _, edges := range g.outgoing {
		sort.SliceStable(edges, func(i, j int) bool {
			if edges[i].Priority != edges[j].Priority {
				return edges[i].Priority > edges[j].Priority
			}
			return edges[i].ID.String() < edges[j].ID.String()
		})
	}
	return g
}

// Node returns the node with the given id, if it belongs to this graph.
func (g *Graph) Node(id uuid.UUID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// StartNode resolves the workflow's configured start node.
func (g *Graph) StartNode() (Node, bool) {
	return g.Node(g.Workflow.StartNodeID)
}

// Outgoing returns the pre-sorted transitions leaving the given node.
// The returned slice must be treated as read-only.
func (g *Graph) Outgoing(nodeID uuid.UUID) []Transition {
	return g.outgoing[nodeID]
}

// Contains reports whether the node belongs to this workflow graph.
func (g *Graph) Contains(nodeID uuid.UUID) bool {
	_, ok := g.nodes[nodeID]
	return ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }
