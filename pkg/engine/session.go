package engine

// Session status values. A turn is only processed while the session is
// active; archival happens externally.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message content types.
const (
	MessageText     = "text"
	MessageQuestion = "question"
)

// Analytics event types emitted by the turn driver.
const (
	EventWorkflowStarted   = "workflow_started"
	EventWorkflowCompleted = "workflow_completed"
	EventNodeEntered       = "node_entered"
)
