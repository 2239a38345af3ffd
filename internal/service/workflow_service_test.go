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

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authoringFixture struct {
	factory unitofwork.RepositoryFactory
	svc     IWorkflowService
	userId  uuid.UUID
	bot     *entity.Bot
}

func newAuthoringFixture(t *testing.T) *authoringFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewFactory(store)

	userId := uuid.New()
	bot := &entity.Bot{UserId: userId, Name: "support bot", IsActive: true}
	require.NoError(t, factory.NewUnitOfWork(ctx).BotRepository().Create(ctx, bot))

	loader := graph.NewLoader(NewGraphStore(factory), time.Minute, logger.NewNoopLogger())
	svc := NewWorkflowService(factory, loader, nil, logger.NewNoopLogger())

	return &authoringFixture{factory: factory, svc: svc, userId: userId, bot: bot}
}

func (f *authoringFixture) createWorkflow(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.userId, &dto.CreateWorkflowRequest{
		BotId: f.bot.Id,
		Name:  "onboarding",
	})
	require.NoError(t, err)
	return resp.Id
}

func (f *authoringFixture) addNode(t *testing.T, workflowId uuid.UUID, nodeType, config string) uuid.UUID {
	t.Helper()
	resp, err := f.svc.AddNode(context.Background(), f.userId, &dto.AddNodeRequest{
		WorkflowId: workflowId,
		NodeType:   nodeType,
		Config:     json.RawMessage(config),
	})
	require.NoError(t, err)
	return resp.Id
}

func TestCreateWorkflowIsDraft(t *testing.T) {
	f := newAuthoringFixture(t)
	id := f.createWorkflow(t)

	detail, err := f.svc.Show(context.Background(), f.userId, id)
	require.NoError(t, err)
	assert.False(t, detail.Workflow.IsActive)
	assert.Empty(t, detail.Nodes)
}

func TestCreateWorkflowForeignBot(t *testing.T) {
	f := newAuthoringFixture(t)
	_, err := f.svc.Create(context.Background(), uuid.New(), &dto.CreateWorkflowRequest{
		BotId: f.bot.Id,
		Name:  "onboarding",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestAddNodeFirstBecomesStart(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)

	first := f.addNode(t, workflowId, "question", `{"question":"hi?"}`)
	f.addNode(t, workflowId, "end", `{"message":"bye"}`)

	detail, err := f.svc.Show(context.Background(), f.userId, workflowId)
	require.NoError(t, err)
	require.NotNil(t, detail.Workflow.StartNodeId)
	assert.Equal(t, first, *detail.Workflow.StartNodeId)

	require.Len(t, detail.Nodes, 2)
	for _, n := range detail.Nodes {
		assert.Equal(t, n.Id == first, n.IsStart)
	}
}

func TestAddNodeExplicitStartOverrides(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)

	f.addNode(t, workflowId, "message", `{"text":"hello"}`)
	resp, err := f.svc.AddNode(context.Background(), f.userId, &dto.AddNodeRequest{
		WorkflowId: workflowId,
		NodeType:   "question",
		Config:     json.RawMessage(`{"question":"name?"}`),
		IsStart:    true,
	})
	require.NoError(t, err)

	detail, err := f.svc.Show(context.Background(), f.userId, workflowId)
	require.NoError(t, err)
	require.NotNil(t, detail.Workflow.StartNodeId)
	assert.Equal(t, resp.Id, *detail.Workflow.StartNodeId)
}

func TestAddNodeRejectsUndecodableConfig(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)

	_, err := f.svc.AddNode(context.Background(), f.userId, &dto.AddNodeRequest{
		WorkflowId: workflowId,
		NodeType:   "message",
		Config:     json.RawMessage(`{broken`),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidNodeConfig)
}

func TestAddTransitionRejectsForeignNodes(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowA := f.createWorkflow(t)
	workflowB := f.createWorkflow(t)

	inA := f.addNode(t, workflowA, "message", `{"text":"a"}`)
	inB := f.addNode(t, workflowB, "message", `{"text":"b"}`)

	_, err := f.svc.AddTransition(context.Background(), f.userId, workflowA, &dto.AddTransitionRequest{
		FromNodeId:  inA,
		ToNodeId:    inB,
		TriggerType: "auto",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidState)
}

func TestDeleteNodeClearsStart(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)
	start := f.addNode(t, workflowId, "message", `{"text":"hi"}`)
	f.addNode(t, workflowId, "end", `{}`)

	require.NoError(t, f.svc.DeleteNode(context.Background(), f.userId, workflowId, start))

	detail, err := f.svc.Show(context.Background(), f.userId, workflowId)
	require.NoError(t, err)
	assert.Nil(t, detail.Workflow.StartNodeId)
}

func TestPublishEmptyWorkflow(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)

	_, err := f.svc.Publish(context.Background(), f.userId, workflowId)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrEmptyWorkflow)
}

func TestPublishWithoutStartNode(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)
	start := f.addNode(t, workflowId, "message", `{"text":"hi"}`)
	f.addNode(t, workflowId, "end", `{}`)
	require.NoError(t, f.svc.DeleteNode(context.Background(), f.userId, workflowId, start))

	_, err := f.svc.Publish(context.Background(), f.userId, workflowId)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrStartNodeMissing)
}

func TestPublishDeactivatesSibling(t *testing.T) {
	f := newAuthoringFixture(t)
	ctx := context.Background()

	first := f.createWorkflow(t)
	f.addNode(t, first, "message", `{"text":"v1"}`)
	resp, err := f.svc.Publish(ctx, f.userId, first)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)

	second := f.createWorkflow(t)
	f.addNode(t, second, "message", `{"text":"v2"}`)
	_, err = f.svc.Publish(ctx, f.userId, second)
	require.NoError(t, err)

	workflows, err := f.svc.GetAll(ctx, f.userId, f.bot.Id)
	require.NoError(t, err)
	require.Len(t, workflows, 2)

	active := map[uuid.UUID]bool{}
	for _, w := range workflows {
		active[w.Id] = w.IsActive
	}
	assert.False(t, active[first])
	assert.True(t, active[second])
}

func TestShowForeignWorkflow(t *testing.T) {
	f := newAuthoringFixture(t)
	workflowId := f.createWorkflow(t)

	_, err := f.svc.Show(context.Background(), uuid.New(), workflowId)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}
