package service

import (
	"context"
	"testing"
	"time"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/memory"
	"chatbot-flow-be/pkg/engine/nlp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntentService() IIntentService {
	return NewIntentService(memory.NewFactory(memory.NewStore()), time.Minute, logger.NewNoopLogger())
}

func TestTrainIntentNormalizesExamples(t *testing.T) {
	svc := newIntentService()
	workflowId := uuid.New()

	resp, err := svc.TrainIntent(context.Background(), &dto.TrainIntentRequest{
		WorkflowId: workflowId,
		IntentName: "  Order_Pizza ",
		Examples:   []string{"  I want Pizza ", "", "GIVE me a pizza"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_pizza", resp.IntentName)
	assert.Equal(t, 2, resp.Examples)

	examples, err := svc.Examples(context.Background(), workflowId)
	require.NoError(t, err)
	assert.Equal(t, []string{"i want pizza", "give me a pizza"}, examples["order_pizza"])
}

func TestTrainIntentRejectsAllEmptyExamples(t *testing.T) {
	svc := newIntentService()

	_, err := svc.TrainIntent(context.Background(), &dto.TrainIntentRequest{
		WorkflowId: uuid.New(),
		IntentName: "order_pizza",
		Examples:   []string{"   ", ""},
	})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestTrainIntentReplacesExisting(t *testing.T) {
	svc := newIntentService()
	workflowId := uuid.New()
	ctx := context.Background()

	_, err := svc.TrainIntent(ctx, &dto.TrainIntentRequest{
		WorkflowId: workflowId,
		IntentName: "greeting",
		Examples:   []string{"hello there"},
	})
	require.NoError(t, err)

	_, err = svc.TrainIntent(ctx, &dto.TrainIntentRequest{
		WorkflowId: workflowId,
		IntentName: "greeting",
		Examples:   []string{"hi", "hey"},
	})
	require.NoError(t, err)

	intents, err := svc.GetIntents(ctx, workflowId)
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, []string{"hi", "hey"}, intents[0].Examples)
}

func TestTrainIntentRefreshesExamplesCache(t *testing.T) {
	svc := newIntentService()
	workflowId := uuid.New()
	ctx := context.Background()

	// Prime the cache with the empty state.
	examples, err := svc.Examples(ctx, workflowId)
	require.NoError(t, err)
	assert.Empty(t, examples)

	_, err = svc.TrainIntent(ctx, &dto.TrainIntentRequest{
		WorkflowId: workflowId,
		IntentName: "goodbye",
		Examples:   []string{"see you later"},
	})
	require.NoError(t, err)

	examples, err = svc.Examples(ctx, workflowId)
	require.NoError(t, err)
	assert.Contains(t, examples, "goodbye")
}

func TestClearIntents(t *testing.T) {
	svc := newIntentService()
	workflowId := uuid.New()
	ctx := context.Background()

	_, err := svc.TrainIntent(ctx, &dto.TrainIntentRequest{
		WorkflowId: workflowId,
		IntentName: "greeting",
		Examples:   []string{"hello"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearIntents(ctx, workflowId))

	intents, err := svc.GetIntents(ctx, workflowId)
	require.NoError(t, err)
	assert.Empty(t, intents)

	examples, err := svc.Examples(ctx, workflowId)
	require.NoError(t, err)
	assert.Empty(t, examples)
}

func TestTrainedIntentDrivesClassifier(t *testing.T) {
	svc := newIntentService()
	workflowId := uuid.New()
	ctx := context.Background()

	_, err := svc.TrainIntent(ctx, &dto.TrainIntentRequest{
		WorkflowId: workflowId,
		IntentName: "order_pizza",
		Examples:   []string{"i want pizza"},
	})
	require.NoError(t, err)

	classifier := nlp.NewClassifier(svc)
	result, err := classifier.Classify(ctx, "I want pizza", workflowId)
	require.NoError(t, err)
	assert.Equal(t, "order_pizza", result.Intent)
}
