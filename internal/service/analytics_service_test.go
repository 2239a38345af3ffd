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
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAnalyticsTopic = "workflow.analytics"

func newAnalyticsFixture(t *testing.T) (IAnalyticsService, IPublisherService, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := memory.NewFactory(memory.NewStore())
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	svc := NewAnalyticsService(pubSub, testAnalyticsTopic, factory, nil, logger.NewNoopLogger())
	publisher := NewPublisherService(pubSub, testAnalyticsTopic)
	return svc, publisher, factory
}

func eventCount(t *testing.T, factory unitofwork.RepositoryFactory, workflowId uuid.UUID) int64 {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	n, err := uow.AnalyticsRepository().Count(context.Background(), specification.ByWorkflowID{WorkflowID: workflowId})
	require.NoError(t, err)
	return n
}

func TestConsumePersistsEvents(t *testing.T) {
	svc, publisher, factory := newAnalyticsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Consume(ctx))

	workflowId, chatId := uuid.New(), uuid.New()
	payload, err := json.Marshal(dto.AnalyticsEventMessage{
		EventType:  engine.EventWorkflowStarted,
		WorkflowId: workflowId,
		ChatId:     &chatId,
		Metadata:   map[string]interface{}{"bot_id": uuid.New().String()},
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		return eventCount(t, factory, workflowId) == 1
	}, 5*time.Second, 10*time.Millisecond)

	uow := factory.NewUnitOfWork(ctx)
	rows, err := uow.AnalyticsRepository().FindAll(ctx, specification.ByWorkflowID{WorkflowID: workflowId})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, engine.EventWorkflowStarted, rows[0].EventType)
	require.NotNil(t, rows[0].ChatId)
	assert.Equal(t, chatId, *rows[0].ChatId)
}

func TestConsumeAcksMalformedPayload(t *testing.T) {
	svc, publisher, factory := newAnalyticsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Consume(ctx))
	require.NoError(t, publisher.Publish(ctx, []byte("{not json")))

	// A garbage payload must not wedge the subscription.
	workflowId := uuid.New()
	payload, err := json.Marshal(dto.AnalyticsEventMessage{
		EventType:  engine.EventNodeEntered,
		WorkflowId: workflowId,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		return eventCount(t, factory, workflowId) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWorkflowStats(t *testing.T) {
	svc, publisher, factory := newAnalyticsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uow := factory.NewUnitOfWork(ctx)
	workflow := &entity.Workflow{BotId: uuid.New(), Name: "onboarding", IsActive: true}
	require.NoError(t, uow.WorkflowRepository().Create(ctx, workflow))

	chats := []*entity.Chat{
		{BotId: workflow.BotId, WorkflowId: workflow.Id, Status: engine.StatusActive},
		{BotId: workflow.BotId, WorkflowId: workflow.Id, Status: engine.StatusCompleted},
		{BotId: workflow.BotId, WorkflowId: workflow.Id, Status: engine.StatusCompleted},
	}
	for _, c := range chats {
		require.NoError(t, uow.ChatRepository().Create(ctx, c))
	}

	require.NoError(t, svc.Consume(ctx))
	payload, err := json.Marshal(dto.AnalyticsEventMessage{
		EventType:  engine.EventWorkflowCompleted,
		WorkflowId: workflow.Id,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		return eventCount(t, factory, workflow.Id) == 1
	}, 5*time.Second, 10*time.Millisecond)

	stats, err := svc.WorkflowStats(ctx, workflow.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalChats)
	assert.Equal(t, int64(2), stats.CompletedChats)
	assert.Equal(t, int64(1), stats.ActiveChats)
	assert.Equal(t, int64(1), stats.EventCount)
}

func TestWorkflowStatsUnknownWorkflow(t *testing.T) {
	svc, _, _ := newAnalyticsFixture(t)
	_, err := svc.WorkflowStats(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}
