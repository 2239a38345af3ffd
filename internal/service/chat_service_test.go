package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/memory"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/engine/graph"
	"chatbot-flow-be/pkg/engine/nlp"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is a seeded bot with one published onboarding workflow:
//
//	question "What is your name?"
//	  --auto--> action save_variable name={{person}}
//	  --auto--> message "Nice to meet you, {{name}}!"
//	  --keyword "bye"--> end "Goodbye!"
type fixture struct {
	factory  unitofwork.RepositoryFactory
	chatSvc  IChatService
	bot      *entity.Bot
	workflow *entity.Workflow
	askName  *entity.WorkflowNode
	saveName *entity.WorkflowNode
	greet    *entity.WorkflowNode
	endNode  *entity.WorkflowNode
}

func nodeConfig(t *testing.T, cfg map[string]interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	return raw
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewFactory(store)
	uow := factory.NewUnitOfWork(ctx)

	bot := &entity.Bot{UserId: uuid.New(), Name: "support bot", IsActive: true}
	require.NoError(t, uow.BotRepository().Create(ctx, bot))

	workflow := &entity.Workflow{BotId: bot.Id, Name: "onboarding", IsActive: true}
	require.NoError(t, uow.WorkflowRepository().Create(ctx, workflow))

	askName := &entity.WorkflowNode{
		WorkflowId: workflow.Id,
		NodeType:   "question",
		Config:     nodeConfig(t, map[string]interface{}{"question": "What is your name?"}),
	}
	saveName := &entity.WorkflowNode{
		WorkflowId: workflow.Id,
		NodeType:   "action",
		Config: nodeConfig(t, map[string]interface{}{
			"action": "save_variable",
			"params": map[string]string{"variable_name": "name", "variable_value": "{{person}}"},
		}),
	}
	greet := &entity.WorkflowNode{
		WorkflowId: workflow.Id,
		NodeType:   "message",
		Config:     nodeConfig(t, map[string]interface{}{"text": "Nice to meet you, {{name}}!"}),
	}
	endNode := &entity.WorkflowNode{
		WorkflowId: workflow.Id,
		NodeType:   "end",
		Config:     nodeConfig(t, map[string]interface{}{"message": "Goodbye!"}),
	}
	for _, n := range []*entity.WorkflowNode{askName, saveName, greet, endNode} {
		require.NoError(t, uow.NodeRepository().Create(ctx, n))
	}

	workflow.StartNodeId = askName.Id
	require.NoError(t, uow.WorkflowRepository().Update(ctx, workflow))

	transitions := []*entity.NodeTransition{
		{FromNodeId: askName.Id, ToNodeId: saveName.Id, TriggerType: "auto"},
		{FromNodeId: saveName.Id, ToNodeId: greet.Id, TriggerType: "auto"},
		{FromNodeId: greet.Id, ToNodeId: endNode.Id, TriggerType: "keyword", TriggerValue: "bye", Priority: 10},
	}
	for _, tr := range transitions {
		require.NoError(t, uow.TransitionRepository().Create(ctx, tr))
	}

	loader := graph.NewLoader(NewGraphStore(factory), time.Minute, logger.NewNoopLogger())
	chatSvc := NewChatService(factory, loader, nlp.NewClassifier(nil), nil, logger.NewNoopLogger())

	return &fixture{
		factory:  factory,
		chatSvc:  chatSvc,
		bot:      bot,
		workflow: workflow,
		askName:  askName,
		saveName: saveName,
		greet:    greet,
		endNode:  endNode,
	}
}

func (f *fixture) startChat(t *testing.T) *dto.StartChatResponse {
	t.Helper()
	resp, err := f.chatSvc.StartChat(context.Background(), &dto.StartChatRequest{
		BotId:          f.bot.Id,
		ExternalUserId: "whatsapp:+155566",
	})
	require.NoError(t, err)
	return resp
}

func TestStartChat(t *testing.T) {
	f := newFixture(t)
	resp := f.startChat(t)

	require.NotNil(t, resp.Reply)
	assert.Equal(t, "What is your name?", resp.Reply.Message)
	assert.False(t, resp.Reply.Ended)

	details, err := f.chatSvc.GetDetails(context.Background(), resp.ChatId)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusActive, details.Status)
	assert.Equal(t, f.workflow.Id, details.WorkflowId)
	require.NotNil(t, details.CurrentNodeId)
	assert.Equal(t, f.askName.Id, *details.CurrentNodeId)
}

func TestStartChatUnknownBot(t *testing.T) {
	f := newFixture(t)
	_, err := f.chatSvc.StartChat(context.Background(), &dto.StartChatRequest{BotId: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestStartChatInactiveBot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uow := f.factory.NewUnitOfWork(ctx)
	f.bot.IsActive = false
	require.NoError(t, uow.BotRepository().Update(ctx, f.bot))

	_, err := f.chatSvc.StartChat(ctx, &dto.StartChatRequest{BotId: f.bot.Id})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestProcessMessageFullTurn(t *testing.T) {
	f := newFixture(t)
	started := f.startChat(t)

	// The auto transition fires, the action captures the extracted person
	// into the name variable, and the greeting renders it.
	resp, err := f.chatSvc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "Hi, my name is Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nice to meet you, Alice!", resp.Reply.Message)
	assert.False(t, resp.Reply.Ended)

	details, err := f.chatSvc.GetDetails(context.Background(), started.ChatId)
	require.NoError(t, err)
	require.NotNil(t, details.CurrentNodeId)
	assert.Equal(t, f.greet.Id, *details.CurrentNodeId)
	assert.Equal(t, "Alice", details.Variables["name"])
	assert.Equal(t, "Alice", details.Variables["person"])
}

func TestProcessMessageKeywordEndsChat(t *testing.T) {
	f := newFixture(t)
	started := f.startChat(t)
	ctx := context.Background()

	_, err := f.chatSvc.ProcessMessage(ctx, &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "my name is Bob",
	})
	require.NoError(t, err)

	resp, err := f.chatSvc.ProcessMessage(ctx, &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "ok bye then",
	})
	require.NoError(t, err)
	assert.True(t, resp.Reply.Ended)
	assert.Equal(t, "Goodbye!", resp.Reply.Message)

	details, err := f.chatSvc.GetDetails(ctx, started.ChatId)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCompleted, details.Status)

	// Further turns on a completed session are rejected.
	_, err = f.chatSvc.ProcessMessage(ctx, &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "hello again",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrChatAlreadyEnded)
}

func TestProcessMessageFallbackHoldsPosition(t *testing.T) {
	f := newFixture(t)
	started := f.startChat(t)
	ctx := context.Background()

	_, err := f.chatSvc.ProcessMessage(ctx, &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "my name is Carol",
	})
	require.NoError(t, err)

	// At the greeting node only the "bye" keyword is wired; anything else
	// answers with the fallback and stays put.
	resp, err := f.chatSvc.ProcessMessage(ctx, &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "what can you do?",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultFallbackMessage, resp.Reply.Message)
	assert.False(t, resp.Reply.Ended)

	details, err := f.chatSvc.GetDetails(ctx, started.ChatId)
	require.NoError(t, err)
	require.NotNil(t, details.CurrentNodeId)
	assert.Equal(t, f.greet.Id, *details.CurrentNodeId)
	assert.Equal(t, engine.StatusActive, details.Status)
}

func TestProcessMessageUnknownChat(t *testing.T) {
	f := newFixture(t)
	_, err := f.chatSvc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		ChatId:  uuid.New(),
		Message: "hello",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestProcessMessageUnresolvedTemplate(t *testing.T) {
	f := newFixture(t)
	started := f.startChat(t)

	// No person entity in the message, so the save_variable action stores
	// the literal placeholder and the greeting surfaces it verbatim.
	resp, err := f.chatSvc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "just some answer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nice to meet you, {{person}}!", resp.Reply.Message)
}

func TestGetHistory(t *testing.T) {
	f := newFixture(t)
	started := f.startChat(t)
	ctx := context.Background()

	_, err := f.chatSvc.ProcessMessage(ctx, &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "my name is Dave",
	})
	require.NoError(t, err)

	history, err := f.chatSvc.GetHistory(ctx, started.ChatId, 0, 0)
	require.NoError(t, err)
	require.Len(t, history.Messages, 3)
	assert.Equal(t, engine.SenderBot, history.Messages[0].SenderType)
	assert.Equal(t, "What is your name?", history.Messages[0].Content)
	assert.Equal(t, engine.SenderUser, history.Messages[1].SenderType)
	assert.Equal(t, "my name is Dave", history.Messages[1].Content)
	assert.Equal(t, engine.SenderBot, history.Messages[2].SenderType)

	limited, err := f.chatSvc.GetHistory(ctx, started.ChatId, 2, 0)
	require.NoError(t, err)
	assert.Len(t, limited.Messages, 2)
}

func TestGetHistoryUnknownChat(t *testing.T) {
	f := newFixture(t)
	_, err := f.chatSvc.GetHistory(context.Background(), uuid.New(), 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestUpdateContextPatchMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	started, err := f.chatSvc.StartChat(ctx, &dto.StartChatRequest{
		BotId:   f.bot.Id,
		Context: map[string]string{"channel": "web", "locale": "en"},
	})
	require.NoError(t, err)

	updated, err := f.chatSvc.UpdateContext(ctx, &dto.UpdateContextRequest{
		ChatId:  started.ChatId,
		Context: map[string]string{"locale": "de", "plan": "premium"},
	})
	require.NoError(t, err)
	assert.Equal(t, "web", updated.Context["channel"])
	assert.Equal(t, "de", updated.Context["locale"])
	assert.Equal(t, "premium", updated.Context["plan"])
}

func TestEndChat(t *testing.T) {
	f := newFixture(t)
	started := f.startChat(t)

	resp, err := f.chatSvc.EndChat(context.Background(), started.ChatId)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCompleted, resp.Status)

	_, err = f.chatSvc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		ChatId:  started.ChatId,
		Message: "hello",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrChatAlreadyEnded)
}
