package executor

import (
	"context"
	"testing"

	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/pkg/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMessage struct {
	NodeID      uuid.UUID
	Content     string
	MessageType string
}

// fakeTurnStore records every mutation in memory.
type fakeTurnStore struct {
	messages    []recordedMessage
	variables   map[string]string
	currentNode uuid.UUID
	status      string
}

func newFakeTurnStore() *fakeTurnStore {
	return &fakeTurnStore{variables: map[string]string{}, status: engine.StatusActive}
}

func (f *fakeTurnStore) AppendBotMessage(ctx context.Context, chatID, nodeID uuid.UUID, content, messageType string) error {
	f.messages = append(f.messages, recordedMessage{NodeID: nodeID, Content: content, MessageType: messageType})
	return nil
}

func (f *fakeTurnStore) Variables(ctx context.Context, chatID uuid.UUID) (map[string]string, error) {
	out := make(map[string]string, len(f.variables))
	for k, v := range f.variables {
		out[k] = v
	}
	return out, nil
}

func (f *fakeTurnStore) UpsertVariable(ctx context.Context, chatID uuid.UUID, key, value string) error {
	f.variables[key] = value
	return nil
}

func (f *fakeTurnStore) SetCurrentNode(ctx context.Context, chatID, nodeID uuid.UUID) error {
	f.currentNode = nodeID
	return nil
}

func (f *fakeTurnStore) SetChatStatus(ctx context.Context, chatID uuid.UUID, status string) error {
	f.status = status
	return nil
}

func parseNode(t *testing.T, workflowID uuid.UUID, kind, config string) engine.Node {
	t.Helper()
	n, err := engine.ParseNode(uuid.New(), workflowID, kind, []byte(config))
	require.NoError(t, err)
	return n
}

func autoEdge(from, to engine.Node) engine.Transition {
	return engine.Transition{
		ID:         uuid.New(),
		FromNodeID: from.ID(),
		ToNodeID:   to.ID(),
		Trigger:    engine.TriggerAuto,
	}
}

func branchEdge(from, to engine.Node, outcome string) engine.Transition {
	return engine.Transition{
		ID:         uuid.New(),
		FromNodeID: from.ID(),
		ToNodeID:   to.ID(),
		Trigger:    engine.TriggerCondition,
		Value:      outcome,
	}
}

func buildGraph(workflowID uuid.UUID, start engine.Node, nodes []engine.Node, transitions []engine.Transition) *engine.Graph {
	return engine.NewGraph(
		engine.Workflow{ID: workflowID, StartNodeID: start.ID(), Active: true},
		nodes, transitions,
	)
}

func TestExecuteMessageNode(t *testing.T) {
	workflowID := uuid.New()
	node := parseNode(t, workflowID, "message", `{"text":"Hi {{name}}!"}`)
	g := buildGraph(workflowID, node, []engine.Node{node}, nil)

	store := newFakeTurnStore()
	store.variables["name"] = "Alice"
	exec := New(store, logger.NewNoopLogger())

	resp, err := exec.Execute(context.Background(), g, uuid.New(), node)
	require.NoError(t, err)
	assert.Equal(t, "Hi Alice!", resp.Message)
	assert.Equal(t, node.ID(), resp.NodeID)
	assert.False(t, resp.Ended)

	require.Len(t, store.messages, 1)
	assert.Equal(t, engine.MessageText, store.messages[0].MessageType)
}

func TestExecuteMessageNodeUnresolvedVariable(t *testing.T) {
	workflowID := uuid.New()
	node := parseNode(t, workflowID, "message", `{"text":"Hi {{name}}!"}`)
	g := buildGraph(workflowID, node, []engine.Node{node}, nil)

	exec := New(newFakeTurnStore(), logger.NewNoopLogger())
	resp, err := exec.Execute(context.Background(), g, uuid.New(), node)
	require.NoError(t, err)
	assert.Equal(t, "Hi {{name}}!", resp.Message)
}

func TestExecuteQuestionNode(t *testing.T) {
	workflowID := uuid.New()
	node := parseNode(t, workflowID, "question", `{"question":"Coffee or tea?","buttons":[{"label":"Coffee","value":"coffee"},{"label":"Tea","value":"tea"}]}`)
	g := buildGraph(workflowID, node, []engine.Node{node}, nil)

	store := newFakeTurnStore()
	exec := New(store, logger.NewNoopLogger())

	resp, err := exec.Execute(context.Background(), g, uuid.New(), node)
	require.NoError(t, err)
	assert.Equal(t, "Coffee or tea?", resp.Message)
	require.Len(t, resp.Buttons, 2)
	assert.Equal(t, "coffee", resp.Buttons[0].Value)

	require.Len(t, store.messages, 1)
	assert.Equal(t, engine.MessageQuestion, store.messages[0].MessageType)
}

func TestExecuteActionChainsToMessage(t *testing.T) {
	workflowID := uuid.New()
	action := parseNode(t, workflowID, "action", `{"action":"save_variable","params":{"variable_name":"name","variable_value":"{{person}}"}}`)
	msg := parseNode(t, workflowID, "message", `{"text":"Nice to meet you, {{name}}!"}`)
	g := buildGraph(workflowID, action, []engine.Node{action, msg}, []engine.Transition{autoEdge(action, msg)})

	store := newFakeTurnStore()
	store.variables["person"] = "Alice"
	exec := New(store, logger.NewNoopLogger())

	chatID := uuid.New()
	resp, err := exec.Execute(context.Background(), g, chatID, action)
	require.NoError(t, err)
	assert.Equal(t, "Nice to meet you, Alice!", resp.Message)
	assert.Equal(t, msg.ID(), resp.NodeID)

	// The saved variable and the advanced position both stick.
	assert.Equal(t, "Alice", store.variables["name"])
	assert.Equal(t, msg.ID(), store.currentNode)
}

func TestExecuteActionWithoutAutoEdge(t *testing.T) {
	workflowID := uuid.New()
	action := parseNode(t, workflowID, "action", `{"action":"save_variable","params":{"variable_name":"k","variable_value":"v"}}`)
	g := buildGraph(workflowID, action, []engine.Node{action}, nil)

	store := newFakeTurnStore()
	exec := New(store, logger.NewNoopLogger())

	resp, err := exec.Execute(context.Background(), g, uuid.New(), action)
	require.NoError(t, err)
	assert.Equal(t, DefaultActionAck, resp.Message)
	assert.Equal(t, "v", store.variables["k"])
}

func TestExecuteUnknownActionIsSkipped(t *testing.T) {
	workflowID := uuid.New()
	action := parseNode(t, workflowID, "action", `{"action":"call_webhook"}`)
	msg := parseNode(t, workflowID, "message", `{"text":"done"}`)
	g := buildGraph(workflowID, action, []engine.Node{action, msg}, []engine.Transition{autoEdge(action, msg)})

	exec := New(newFakeTurnStore(), logger.NewNoopLogger())
	resp, err := exec.Execute(context.Background(), g, uuid.New(), action)
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Message)
}

func TestExecuteConditionBranches(t *testing.T) {
	workflowID := uuid.New()
	cond := parseNode(t, workflowID, "condition", `{"condition":"age >= 18"}`)
	adult := parseNode(t, workflowID, "message", `{"text":"welcome"}`)
	minor := parseNode(t, workflowID, "message", `{"text":"sorry"}`)
	g := buildGraph(workflowID, cond,
		[]engine.Node{cond, adult, minor},
		[]engine.Transition{branchEdge(cond, adult, "true"), branchEdge(cond, minor, "false")},
	)

	tests := []struct {
		name string
		age  string
		want string
	}{
		{name: "true branch", age: "21", want: "welcome"},
		{name: "false branch", age: "16", want: "sorry"},
		{name: "eval failure takes false branch", age: "", want: "sorry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeTurnStore()
			if tt.age != "" {
				store.variables["age"] = tt.age
			}
			exec := New(store, logger.NewNoopLogger())
			resp, err := exec.Execute(context.Background(), g, uuid.New(), cond)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestExecuteConditionDeadEnd(t *testing.T) {
	workflowID := uuid.New()
	cond := parseNode(t, workflowID, "condition", `{"condition":"true"}`)
	g := buildGraph(workflowID, cond, []engine.Node{cond}, nil)

	store := newFakeTurnStore()
	exec := New(store, logger.NewNoopLogger())

	resp, err := exec.Execute(context.Background(), g, uuid.New(), cond)
	require.NoError(t, err)
	assert.Empty(t, resp.Message)
	assert.Equal(t, cond.ID(), resp.NodeID)
	assert.Empty(t, store.messages)
}

func TestExecuteEndNode(t *testing.T) {
	workflowID := uuid.New()
	end := parseNode(t, workflowID, "end", `{"message":"Bye {{name}}!"}`)
	g := buildGraph(workflowID, end, []engine.Node{end}, nil)

	store := newFakeTurnStore()
	store.variables["name"] = "Alice"
	exec := New(store, logger.NewNoopLogger())

	resp, err := exec.Execute(context.Background(), g, uuid.New(), end)
	require.NoError(t, err)
	assert.True(t, resp.Ended)
	assert.Equal(t, "Bye Alice!", resp.Message)
	assert.Equal(t, engine.StatusCompleted, store.status)
}

func TestExecuteEndNodeDefaultMessage(t *testing.T) {
	workflowID := uuid.New()
	end := parseNode(t, workflowID, "end", `{}`)
	g := buildGraph(workflowID, end, []engine.Node{end}, nil)

	exec := New(newFakeTurnStore(), logger.NewNoopLogger())
	resp, err := exec.Execute(context.Background(), g, uuid.New(), end)
	require.NoError(t, err)
	assert.Equal(t, DefaultClosingMessage, resp.Message)
}

func TestExecuteLoopDetection(t *testing.T) {
	workflowID := uuid.New()
	a := parseNode(t, workflowID, "action", `{"action":"noop"}`)
	b := parseNode(t, workflowID, "action", `{"action":"noop"}`)
	g := buildGraph(workflowID, a,
		[]engine.Node{a, b},
		[]engine.Transition{autoEdge(a, b), autoEdge(b, a)},
	)

	exec := NewWithHopBudget(newFakeTurnStore(), logger.NewNoopLogger(), 5)
	_, err := exec.Execute(context.Background(), g, uuid.New(), a)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrLoopDetected)
}

func TestExecuteTracksPositionPerHop(t *testing.T) {
	workflowID := uuid.New()
	a := parseNode(t, workflowID, "action", `{"action":"noop"}`)
	b := parseNode(t, workflowID, "action", `{"action":"noop"}`)
	question := parseNode(t, workflowID, "question", `{"question":"ready?"}`)
	g := buildGraph(workflowID, a,
		[]engine.Node{a, b, question},
		[]engine.Transition{autoEdge(a, b), autoEdge(b, question)},
	)

	store := newFakeTurnStore()
	exec := New(store, logger.NewNoopLogger())

	resp, err := exec.Execute(context.Background(), g, uuid.New(), a)
	require.NoError(t, err)
	assert.Equal(t, question.ID(), resp.NodeID)
	assert.Equal(t, question.ID(), store.currentNode)
}
