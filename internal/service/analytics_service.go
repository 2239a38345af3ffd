package service

import (
	"context"
	"encoding/json"
	"fmt"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/events"
	pktNats "chatbot-flow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IAnalyticsService interface {
	Consume(ctx context.Context) error
	WorkflowStats(ctx context.Context, workflowId uuid.UUID) (*dto.WorkflowStatsResponse, error)
}

// analyticsService drains the in-process analytics topic, persists each
// event and mirrors it onto NATS for external consumers.
type analyticsService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pktNats.Publisher
	logger     logger.ILogger
}

func NewAnalyticsService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IAnalyticsService {
	return &analyticsService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     log,
	}
}

func (s *analyticsService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *analyticsService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AnalyticsEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("analytics", "Failed to unmarshal analytics event", map[string]interface{}{
			"error": err.Error(),
		})
		// Malformed payloads are acked; retrying cannot fix them.
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	row := &entity.WorkflowAnalytics{
		WorkflowId: payload.WorkflowId,
		ChatId:     payload.ChatId,
		NodeId:     payload.NodeId,
		EventType:  payload.EventType,
		Metadata:   payload.Metadata,
	}
	if err := uow.AnalyticsRepository().Create(ctx, row); err != nil {
		s.logger.Error("analytics", "Failed to persist analytics event", map[string]interface{}{
			"event_type": payload.EventType,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	if s.natsPub != nil {
		event := events.AnalyticsEvent{
			Type:       payload.EventType,
			WorkflowID: payload.WorkflowId.String(),
			Metadata:   payload.Metadata,
			OccurredAt: payload.OccurredAt,
		}
		if payload.ChatId != nil {
			event.ChatID = payload.ChatId.String()
		}
		if payload.NodeId != nil {
			event.NodeID = payload.NodeId.String()
		}
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Warn("analytics", "Failed to mirror event to NATS", map[string]interface{}{
				"event_type": payload.EventType,
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}

func (s *analyticsService) WorkflowStats(ctx context.Context, workflowId uuid.UUID) (*dto.WorkflowStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workflow, err := uow.WorkflowRepository().FindOne(ctx, specification.ByID{ID: workflowId})
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrNotFound, workflowId)
	}

	totalChats, err := uow.ChatRepository().Count(ctx, specification.ByWorkflowID{WorkflowID: workflowId})
	if err != nil {
		return nil, err
	}
	completedChats, err := uow.ChatRepository().Count(ctx,
		specification.ByWorkflowID{WorkflowID: workflowId},
		specification.ByStatus{Status: engine.StatusCompleted},
	)
	if err != nil {
		return nil, err
	}
	activeChats, err := uow.ChatRepository().Count(ctx,
		specification.ByWorkflowID{WorkflowID: workflowId},
		specification.ByStatus{Status: engine.StatusActive},
	)
	if err != nil {
		return nil, err
	}
	eventCount, err := uow.AnalyticsRepository().Count(ctx, specification.ByWorkflowID{WorkflowID: workflowId})
	if err != nil {
		return nil, err
	}

	return &dto.WorkflowStatsResponse{
		WorkflowId:     workflowId,
		TotalChats:     totalChats,
		CompletedChats: completedChats,
		ActiveChats:    activeChats,
		EventCount:     eventCount,
	}, nil
}
