// Package executor runs the node state machine for one turn: it performs a
// node's effect and chains through automatic transitions until it reaches a
// node that waits for user input or ends the session.
package executor

import (
	"context"
	"fmt"

	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/engine/condition"
	"chatbot-flow-be/pkg/engine/template"

	"github.com/google/uuid"
)

// MaxHops bounds auto-chaining within a single turn. Authored graphs may be
// cyclic; the budget turns an infinite chain into LoopDetected.
const MaxHops = 20

// Default replies when a node has no configured text.
const (
	DefaultClosingMessage = "Thank you! Conversation ended."
	DefaultActionAck      = "Done."
)

// TurnStore is the slice of session persistence the executor mutates. All
// calls happen inside the turn driver's transaction, so a failed turn
// leaves no partial node effects behind.
type TurnStore interface {
	AppendBotMessage(ctx context.Context, chatID, nodeID uuid.UUID, content, messageType string) error
	Variables(ctx context.Context, chatID uuid.UUID) (map[string]string, error)
	UpsertVariable(ctx context.Context, chatID uuid.UUID, key, value string) error
	SetCurrentNode(ctx context.Context, chatID, nodeID uuid.UUID) error
	SetChatStatus(ctx context.Context, chatID uuid.UUID, status string) error
}

// Response is the outbound side of one turn.
type Response struct {
	Message string
	Buttons []engine.Button
	NodeID  uuid.UUID
	Ended   bool
}

// Executor is the state machine over node kinds.
type Executor struct {
	store  TurnStore
	logger logger.ILogger
	// maxHops exists so tests can tighten the budget; production code
	// uses MaxHops.
	maxHops int
}

func New(store TurnStore, log logger.ILogger) *Executor {
	return &Executor{store: store, logger: log, maxHops: MaxHops}
}

// NewWithHopBudget is like New with an explicit chaining budget.
func NewWithHopBudget(store TurnStore, log logger.ILogger, maxHops int) *Executor {
	return &Executor{store: store, logger: log, maxHops: maxHops}
}

// Execute performs node's effect for the given chat, following action and
// condition chains through the graph. The session's current node tracks
// every hop so the next turn resumes from wherever the chain stopped.
func (e *Executor) Execute(ctx context.Context, g *engine.Graph, chatID uuid.UUID, node engine.Node) (*Response, error) {
	for hops := 0; ; hops++ {
		if hops > e.maxHops {
			return nil, fmt.Errorf("%w: exceeded %d hops in one turn at node %s", engine.ErrLoopDetected, e.maxHops, node.ID())
		}

		vars, err := e.store.Variables(ctx, chatID)
		if err != nil {
			return nil, err
		}

		switch n := node.(type) {
		case engine.MessageNode:
			text := template.Render(n.Text, vars)
			if err := e.store.AppendBotMessage(ctx, chatID, n.ID(), text, engine.MessageText); err != nil {
				return nil, err
			}
			return &Response{Message: text, NodeID: n.ID()}, nil

		case engine.QuestionNode:
			prompt := template.Render(n.Prompt, vars)
			if err := e.store.AppendBotMessage(ctx, chatID, n.ID(), prompt, engine.MessageQuestion); err != nil {
				return nil, err
			}
			return &Response{Message: prompt, Buttons: n.Buttons, NodeID: n.ID()}, nil

		case engine.ActionNode:
			if err := e.runAction(ctx, chatID, n, vars); err != nil {
				return nil, err
			}
			next, ok := e.autoTarget(g, n.ID())
			if !ok {
				return &Response{Message: DefaultActionAck, NodeID: n.ID()}, nil
			}
			node = next

		case engine.ConditionNode:
			outcome := e.evaluate(n, vars)
			next, ok := e.branchTarget(g, n.ID(), outcome)
			if !ok {
				// Dead-end branch: nothing authored for this outcome.
				e.logger.Warn("executor", "Condition node has no branch for outcome", map[string]interface{}{
					"node_id": n.ID().String(),
					"outcome": outcome,
				})
				return &Response{NodeID: n.ID()}, nil
			}
			node = next

		case engine.EndNode:
			if err := e.store.SetChatStatus(ctx, chatID, engine.StatusCompleted); err != nil {
				return nil, err
			}
			msg := n.ClosingMessage
			if msg == "" {
				msg = DefaultClosingMessage
			}
			msg = template.Render(msg, vars)
			if err := e.store.AppendBotMessage(ctx, chatID, n.ID(), msg, engine.MessageText); err != nil {
				return nil, err
			}
			return &Response{Message: msg, NodeID: n.ID(), Ended: true}, nil

		default:
			return nil, fmt.Errorf("%w: unhandled node kind %q", engine.ErrInvalidNodeConfig, node.Kind())
		}

		// Chained hop: keep the persisted position in lockstep so the next
		// user message resumes from the node the chain actually reached.
		if err := e.store.SetCurrentNode(ctx, chatID, node.ID()); err != nil {
			return nil, err
		}
	}
}

// runAction executes an action node's configured side effect. Unknown
// actions are acknowledged rather than failed: the authoring side may
// ship action types this engine version does not know.
func (e *Executor) runAction(ctx context.Context, chatID uuid.UUID, n engine.ActionNode, vars map[string]string) error {
	switch n.Action {
	case "save_variable":
		key := n.Params["variable_name"]
		if key == "" {
			e.logger.Warn("executor", "save_variable action missing variable_name", map[string]interface{}{
				"node_id": n.ID().String(),
			})
			return nil
		}
		value := template.Render(n.Params["variable_value"], vars)
		return e.store.UpsertVariable(ctx, chatID, key, value)
	default:
		e.logger.Info("executor", "Skipping unknown action type", map[string]interface{}{
			"node_id": n.ID().String(),
			"action":  n.Action,
		})
		return nil
	}
}

// evaluate runs a condition node's expression. Failures degrade to "false"
// and are logged; a broken authored expression must not crash the session.
func (e *Executor) evaluate(n engine.ConditionNode, vars map[string]string) string {
	ok, err := condition.Eval(n.Expression, vars)
	if err != nil {
		evalErr := &engine.EvaluationError{Expression: n.Expression, Err: err}
		e.logger.Warn("executor", "Condition evaluation failed, treating as false", map[string]interface{}{
			"node_id": n.ID().String(),
			"error":   evalErr.Error(),
		})
		return "false"
	}
	if ok {
		return "true"
	}
	return "false"
}

// autoTarget finds the highest-priority auto transition out of a node.
func (e *Executor) autoTarget(g *engine.Graph, nodeID uuid.UUID) (engine.Node, bool) {
	for _, t := range g.Outgoing(nodeID) {
		if t.Trigger == engine.TriggerAuto {
			return g.Node(t.ToNodeID)
		}
	}
	return nil, false
}

// branchTarget finds the outgoing transition whose trigger value matches
// the condition outcome ("true"/"false").
func (e *Executor) branchTarget(g *engine.Graph, nodeID uuid.UUID, outcome string) (engine.Node, bool) {
	for _, t := range g.Outgoing(nodeID) {
		if t.Value == outcome {
			return g.Node(t.ToNodeID)
		}
	}
	return nil, false
}
