package engine

import "errors"

// Structural errors propagate to the caller as typed failures.
// Evaluation errors never do: they are downgraded inside the executor.
var (
	// ErrNotFound covers absent bots, workflows, chats, nodes and transitions.
	ErrNotFound = errors.New("resource not found")

	// ErrGraphNotFound means the bot has no active workflow.
	ErrGraphNotFound = errors.New("no active workflow found for bot")

	// ErrStartNodeMissing means the active workflow has no resolvable start node.
	ErrStartNodeMissing = errors.New("workflow has no resolvable start node")

	// ErrEmptyWorkflow means a workflow was published without any nodes.
	ErrEmptyWorkflow = errors.New("workflow has no nodes")

	// ErrChatAlreadyEnded means a turn was attempted on a non-active session.
	ErrChatAlreadyEnded = errors.New("chat has already ended")

	// ErrInvalidState means the session references a node that no longer
	// belongs to its workflow graph.
	ErrInvalidState = errors.New("invalid chat state")

	// ErrLoopDetected means auto-chaining exceeded the per-turn hop budget.
	ErrLoopDetected = errors.New("transition loop detected")

	// ErrInvalidNodeConfig means an authored node payload could not be decoded.
	ErrInvalidNodeConfig = errors.New("invalid node configuration")
)

// EvaluationError wraps a condition expression failure. It is logged and
// degraded to false by the executor, never surfaced to callers.
type EvaluationError struct {
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return "condition evaluation failed: " + e.Expression + ": " + e.Err.Error()
}

func (e *EvaluationError) Unwrap() error { return e.Err }
