// Package resolver selects the next node for a turn by matching the current
// node's outgoing transitions against the message, classified intent,
// extracted entities and session variables.
package resolver

import (
	"strings"

	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/engine/condition"
)

// Input carries everything a single resolution needs. Resolution is a pure
// function of this input plus the transition slice, so identical inputs
// always pick the same transition.
type Input struct {
	Message  string
	Intent   string
	Entities map[string][]string
	// Context is the session variable view used by condition triggers.
	Context map[string]string
}

// EvalErrorHandler is notified when a condition trigger fails to evaluate.
// The failure is downgraded to "no match"; it must never abort the turn.
type EvalErrorHandler func(t engine.Transition, err error)

// Resolve walks the transitions in their pre-sorted order (priority
// descending, ties by ascending id) and returns the first that matches.
// No match returns nil: the caller takes the fallback path, which is a
// normal outcome rather than an error.
func Resolve(transitions []engine.Transition, in Input, onEvalError EvalErrorHandler) *engine.Transition {
	for i := range transitions {
		t := transitions[i]
		if matches(t, in, onEvalError) {
			return &t
		}
	}
	return nil
}

func matches(t engine.Transition, in Input, onEvalError EvalErrorHandler) bool {
	switch t.Trigger {
	case engine.TriggerIntent:
		return in.Intent != "" && in.Intent == t.Value
	case engine.TriggerKeyword:
		return t.Value != "" && strings.Contains(strings.ToLower(in.Message), strings.ToLower(t.Value))
	case engine.TriggerButtonClick:
		return strings.EqualFold(strings.TrimSpace(in.Message), t.Value)
	case engine.TriggerCondition:
		ok, err := condition.Eval(t.Condition, in.Context)
		if err != nil {
			if onEvalError != nil {
				onEvalError(t, &engine.EvaluationError{Expression: t.Condition, Err: err})
			}
			return false
		}
		return ok
	case engine.TriggerAuto:
		return true
	default:
		return false
	}
}
