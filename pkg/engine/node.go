package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NodeKind enumerates the supported node types.
type NodeKind string

const (
	KindMessage   NodeKind = "message"
	KindQuestion  NodeKind = "question"
	KindAction    NodeKind = "action"
	KindCondition NodeKind = "condition"
	KindEnd       NodeKind = "end"
)

// Node is a closed variant: exactly one implementation per node kind.
// The executor type-switches over it, so adding a kind is a compile-time
// visible change instead of a missed string case.
type Node interface {
	ID() uuid.UUID
	WorkflowID() uuid.UUID
	Kind() NodeKind
	// Fallback returns the authored fallback message for this node,
	// or "" when none is configured.
	Fallback() string
	// UseClassifier reports whether inbound messages at this node
	// should run through the intent classifier.
	UseClassifier() bool

	isNode()
}

type baseNode struct {
	id         uuid.UUID
	workflowID uuid.UUID
	fallback   string
	useNLP     bool
}

func (b baseNode) ID() uuid.UUID         { return b.id }
func (b baseNode) WorkflowID() uuid.UUID { return b.workflowID }
func (b baseNode) Fallback() string      { return b.fallback }
func (b baseNode) UseClassifier() bool   { return b.useNLP }
func (b baseNode) isNode()               {}

// Button is a quick-reply option attached to a question node.
type Button struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MessageNode emits a rendered text message and ends the turn.
type MessageNode struct {
	baseNode
	Text string
}

func (MessageNode) Kind() NodeKind { return KindMessage }

// QuestionNode emits a prompt (optionally with buttons) and ends the turn.
// Answers to a question node are always classified.
type QuestionNode struct {
	baseNode
	Prompt  string
	Buttons []Button
}

func (QuestionNode) Kind() NodeKind      { return KindQuestion }
func (QuestionNode) UseClassifier() bool { return true }

// ActionNode performs a side effect and chains through its auto transition.
type ActionNode struct {
	baseNode
	Action string
	Params map[string]string
}

func (ActionNode) Kind() NodeKind { return KindAction }

// ConditionNode branches on an expression evaluated against the
// session variables, chaining to the "true" or "false" transition.
type ConditionNode struct {
	baseNode
	Expression string
}

func (ConditionNode) Kind() NodeKind { return KindCondition }

// EndNode completes the session.
type EndNode struct {
	baseNode
	ClosingMessage string
}

func (EndNode) Kind() NodeKind { return KindEnd }

type nodeConfig struct {
	Text            string            `json:"text"`
	Message         string            `json:"message"`
	Question        string            `json:"question"`
	Buttons         []Button          `json:"buttons"`
	Action          string            `json:"action"`
	Params          map[string]string `json:"params"`
	Condition       string            `json:"condition"`
	FallbackMessage string            `json:"fallback_message"`
	UseNLP          bool              `json:"use_nlp"`
}

// ParseNode decodes an authored node row (kind string + opaque config JSON)
// into its typed variant. Unknown kinds and undecodable configs are
// configuration errors: authored graphs are external input.
func ParseNode(id, workflowID uuid.UUID, kind string, config []byte) (Node, error) {
	var cfg nodeConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, fmt.Errorf("%w: node %s has invalid config: %v", ErrInvalidNodeConfig, id, err)
		}
	}

	base := baseNode{
		id:         id,
		workflowID: workflowID,
		fallback:   cfg.FallbackMessage,
		useNLP:     cfg.UseNLP,
	}

	switch NodeKind(kind) {
	case KindMessage:
		text := cfg.Text
		if text == "" {
			text = cfg.Message
		}
		return MessageNode{baseNode: base, Text: text}, nil
	case KindQuestion:
		prompt := cfg.Text
		if prompt == "" {
			prompt = cfg.Question
		}
		return QuestionNode{baseNode: base, Prompt: prompt, Buttons: cfg.Buttons}, nil
	case KindAction:
		return ActionNode{baseNode: base, Action: cfg.Action, Params: actionParams(cfg, config)}, nil
	case KindCondition:
		return ConditionNode{baseNode: base, Expression: cfg.Condition}, nil
	case KindEnd:
		msg := cfg.Message
		if msg == "" {
			msg = cfg.Text
		}
		return EndNode{baseNode: base, ClosingMessage: msg}, nil
	default:
		return nil, fmt.Errorf("%w: node %s has unknown type %q", ErrInvalidNodeConfig, id, kind)
	}
}

// actionParams keeps backwards compatibility with flat action configs
// ("variable_name"/"variable_value" at the top level) while preferring
// an explicit params object.
func actionParams(cfg nodeConfig, raw []byte) map[string]string {
	if len(cfg.Params) > 0 {
		return cfg.Params
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil
	}
	params := make(map[string]string)
	for _, key := range []string{"variable_name", "variable_value"} {
		if v, ok := flat[key]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				params[key] = s
			}
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}
