package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/pkg/locker"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/engine/executor"
	"chatbot-flow-be/pkg/engine/graph"
	"chatbot-flow-be/pkg/engine/nlp"
	"chatbot-flow-be/pkg/engine/resolver"

	"github.com/google/uuid"
)

// DefaultFallbackMessage is the reply when no transition matches and the
// current node has no authored fallback.
const DefaultFallbackMessage = "I didn't understand that. Can you try again?"

type IChatService interface {
	StartChat(ctx context.Context, req *dto.StartChatRequest) (*dto.StartChatResponse, error)
	ProcessMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, chatId uuid.UUID, limit, offset int) (*dto.ChatHistoryResponse, error)
	GetDetails(ctx context.Context, chatId uuid.UUID) (*dto.ChatDetailResponse, error)
	UpdateContext(ctx context.Context, req *dto.UpdateContextRequest) (*dto.UpdateContextResponse, error)
	EndChat(ctx context.Context, chatId uuid.UUID) (*dto.EndChatResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	loader           *graph.Loader
	classifier       *nlp.Classifier
	publisherService IPublisherService
	locks            *locker.KeyedMutex
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	loader *graph.Loader,
	classifier *nlp.Classifier,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		loader:           loader,
		classifier:       classifier,
		publisherService: publisherService,
		locks:            locker.NewKeyedMutex(),
		logger:           log,
	}
}

func (s *chatService) StartChat(ctx context.Context, req *dto.StartChatRequest) (*dto.StartChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bot, err := uow.BotRepository().FindOne(ctx,
		specification.ByID{ID: req.BotId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, fmt.Errorf("%w: bot %s not found or inactive", engine.ErrNotFound, req.BotId)
	}

	g, err := s.loader.LoadActiveGraph(ctx, req.BotId)
	if err != nil {
		return nil, err
	}
	start, ok := g.StartNode()
	if !ok {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrStartNodeMissing, g.Workflow.ID)
	}

	chatContext := req.Context
	if chatContext == nil {
		chatContext = map[string]string{}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat := &entity.Chat{
		BotId:          req.BotId,
		WorkflowId:     g.Workflow.ID,
		ExternalUserId: req.ExternalUserId,
		CurrentNodeId:  start.ID(),
		Context:        chatContext,
		Status:         engine.StatusActive,
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	exec := executor.New(newTurnStore(uow, chat.Context), s.logger)
	resp, err := exec.Execute(ctx, g, chat.Id, start)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.emit(ctx, engine.EventWorkflowStarted, g.Workflow.ID, &chat.Id, nil, map[string]interface{}{
		"bot_id":           req.BotId.String(),
		"external_user_id": req.ExternalUserId,
	})

	return &dto.StartChatResponse{ChatId: chat.Id, Reply: toReplyDTO(resp)}, nil
}

func (s *chatService) ProcessMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	// One turn at a time per session; concurrent deliveries queue here.
	unlock := s.locks.Lock(req.ChatId.String())
	defer unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: req.ChatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %s", engine.ErrNotFound, req.ChatId)
	}
	if chat.Status != engine.StatusActive {
		return nil, fmt.Errorf("%w: chat %s is %s", engine.ErrChatAlreadyEnded, chat.Id, chat.Status)
	}

	// Sessions stay pinned to the workflow they started on.
	g, err := s.loader.LoadGraph(ctx, chat.WorkflowId)
	if err != nil {
		return nil, err
	}
	node, ok := g.Node(chat.CurrentNodeId)
	if !ok {
		return nil, fmt.Errorf("%w: chat %s current node %s not in workflow %s",
			engine.ErrInvalidState, chat.Id, chat.CurrentNodeId, chat.WorkflowId)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	store := newTurnStore(uow, chat.Context)

	userMsg := &entity.Message{
		ChatId:      chat.Id,
		SenderType:  engine.SenderUser,
		Content:     req.Message,
		MessageType: engine.MessageText,
	}
	if err := uow.MessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	intent := ""
	var entities map[string][]string
	if node.UseClassifier() {
		result, err := s.classifier.Classify(ctx, req.Message, chat.WorkflowId)
		if err != nil {
			// Classification is advisory; keyword and button triggers still
			// work without it.
			s.logger.Warn("chat", "Intent classification failed", map[string]interface{}{
				"chat_id": chat.Id.String(),
				"error":   err.Error(),
			})
		} else {
			intent = result.Intent
			entities = result.Entities
		}
	}

	vars, err := store.Variables(ctx, chat.Id)
	if err != nil {
		return nil, err
	}

	target := resolver.Resolve(g.Outgoing(node.ID()), resolver.Input{
		Message:  req.Message,
		Intent:   intent,
		Entities: entities,
		Context:  vars,
	}, func(t engine.Transition, err error) {
		s.logger.Warn("chat", "Transition condition failed to evaluate", map[string]interface{}{
			"transition_id": t.ID.String(),
			"error":         err.Error(),
		})
	})

	if target == nil {
		// No transition matched: reply with the fallback and hold position.
		fallback := node.Fallback()
		if fallback == "" {
			fallback = DefaultFallbackMessage
		}
		if err := store.AppendBotMessage(ctx, chat.Id, node.ID(), fallback, engine.MessageText); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		return &dto.SendMessageResponse{
			ChatId: chat.Id,
			Reply:  &dto.BotReplyDTO{Message: fallback},
		}, nil
	}

	// Persist entity captures so later templates and conditions see them.
	for category, values := range entities {
		if len(values) == 0 {
			continue
		}
		if err := store.UpsertVariable(ctx, chat.Id, nlp.Singular(category), values[0]); err != nil {
			return nil, err
		}
	}

	next, ok := g.Node(target.ToNodeID)
	if !ok {
		return nil, fmt.Errorf("%w: transition %s targets unknown node %s",
			engine.ErrInvalidState, target.ID, target.ToNodeID)
	}
	if err := store.SetCurrentNode(ctx, chat.Id, next.ID()); err != nil {
		return nil, err
	}

	exec := executor.New(store, s.logger)
	resp, err := exec.Execute(ctx, g, chat.Id, next)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	nodeId := next.ID()
	s.emit(ctx, engine.EventNodeEntered, chat.WorkflowId, &chat.Id, &nodeId, map[string]interface{}{
		"intent":   intent,
		"entities": entities,
	})
	if resp.Ended {
		s.emit(ctx, engine.EventWorkflowCompleted, chat.WorkflowId, &chat.Id, nil, nil)
	}

	return &dto.SendMessageResponse{ChatId: chat.Id, Reply: toReplyDTO(resp)}, nil
}

func (s *chatService) GetHistory(ctx context.Context, chatId uuid.UUID, limit, offset int) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %s", engine.ErrNotFound, chatId)
	}

	specs := []specification.Specification{
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at"},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.ChatHistoryMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, &dto.ChatHistoryMessage{
			Id:          m.Id,
			SenderType:  m.SenderType,
			Content:     m.Content,
			MessageType: m.MessageType,
			NodeId:      m.NodeId,
			CreatedAt:   m.CreatedAt,
		})
	}
	return &dto.ChatHistoryResponse{ChatId: chatId, Messages: history}, nil
}

func (s *chatService) GetDetails(ctx context.Context, chatId uuid.UUID) (*dto.ChatDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %s", engine.ErrNotFound, chatId)
	}

	variables, err := uow.ChatVariableRepository().FindAll(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return nil, err
	}
	varMap := make(map[string]string, len(variables))
	for _, v := range variables {
		varMap[v.VariableName] = v.VariableValue
	}

	resp := &dto.ChatDetailResponse{
		Id:             chat.Id,
		BotId:          chat.BotId,
		WorkflowId:     chat.WorkflowId,
		ExternalUserId: chat.ExternalUserId,
		Status:         chat.Status,
		Context:        chat.Context,
		Variables:      varMap,
		CreatedAt:      chat.CreatedAt,
	}
	if chat.CurrentNodeId != uuid.Nil {
		id := chat.CurrentNodeId
		resp.CurrentNodeId = &id
	}
	return resp, nil
}

func (s *chatService) UpdateContext(ctx context.Context, req *dto.UpdateContextRequest) (*dto.UpdateContextResponse, error) {
	unlock := s.locks.Lock(req.ChatId.String())
	defer unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: req.ChatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %s", engine.ErrNotFound, req.ChatId)
	}

	// Patch semantics: supplied keys overwrite, absent keys survive.
	if chat.Context == nil {
		chat.Context = map[string]string{}
	}
	for k, v := range req.Context {
		chat.Context[k] = v
	}
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	return &dto.UpdateContextResponse{ChatId: chat.Id, Context: chat.Context}, nil
}

func (s *chatService) EndChat(ctx context.Context, chatId uuid.UUID) (*dto.EndChatResponse, error) {
	unlock := s.locks.Lock(chatId.String())
	defer unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %s", engine.ErrNotFound, chatId)
	}

	chat.Status = engine.StatusCompleted
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	s.emit(ctx, engine.EventWorkflowCompleted, chat.WorkflowId, &chat.Id, nil, nil)

	return &dto.EndChatResponse{ChatId: chatId, Status: chat.Status}, nil
}

// emit publishes an analytics event onto the internal bus. The consumer
// persists it and forwards it to NATS; a publish failure never fails the
// turn that produced it.
func (s *chatService) emit(ctx context.Context, eventType string, workflowId uuid.UUID, chatId, nodeId *uuid.UUID, metadata map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.AnalyticsEventMessage{
		EventType:  eventType,
		WorkflowId: workflowId,
		ChatId:     chatId,
		NodeId:     nodeId,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("chat", "Failed to publish analytics event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func toReplyDTO(resp *executor.Response) *dto.BotReplyDTO {
	reply := &dto.BotReplyDTO{
		Message: resp.Message,
		Ended:   resp.Ended,
	}
	if resp.NodeID != uuid.Nil {
		id := resp.NodeID
		reply.NodeId = &id
	}
	for _, b := range resp.Buttons {
		reply.Buttons = append(reply.Buttons, dto.ButtonDTO{Label: b.Label, Value: b.Value})
	}
	return reply
}

// turnStore adapts one unit of work to the executor's persistence slice.
// Session context rides along so variable reads see context keys too,
// with extracted variables shadowing them on collision.
type turnStore struct {
	uow         unitofwork.UnitOfWork
	chatContext map[string]string
}

func newTurnStore(uow unitofwork.UnitOfWork, chatContext map[string]string) *turnStore {
	return &turnStore{uow: uow, chatContext: chatContext}
}

func (t *turnStore) AppendBotMessage(ctx context.Context, chatID, nodeID uuid.UUID, content, messageType string) error {
	id := nodeID
	return t.uow.MessageRepository().Create(ctx, &entity.Message{
		ChatId:      chatID,
		NodeId:      &id,
		SenderType:  engine.SenderBot,
		Content:     content,
		MessageType: messageType,
	})
}

func (t *turnStore) Variables(ctx context.Context, chatID uuid.UUID) (map[string]string, error) {
	rows, err := t.uow.ChatVariableRepository().FindAll(ctx, specification.ByChatID{ChatID: chatID})
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(rows)+len(t.chatContext))
	for k, v := range t.chatContext {
		merged[k] = v
	}
	for _, row := range rows {
		merged[row.VariableName] = row.VariableValue
	}
	return merged, nil
}

func (t *turnStore) UpsertVariable(ctx context.Context, chatID uuid.UUID, key, value string) error {
	return t.uow.ChatVariableRepository().Upsert(ctx, &entity.ChatVariable{
		ChatId:        chatID,
		VariableName:  key,
		VariableValue: value,
	})
}

func (t *turnStore) SetCurrentNode(ctx context.Context, chatID, nodeID uuid.UUID) error {
	chat, err := t.uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatID})
	if err != nil {
		return err
	}
	if chat == nil {
		return fmt.Errorf("%w: chat %s", engine.ErrNotFound, chatID)
	}
	chat.CurrentNodeId = nodeID
	return t.uow.ChatRepository().Update(ctx, chat)
}

func (t *turnStore) SetChatStatus(ctx context.Context, chatID uuid.UUID, status string) error {
	chat, err := t.uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatID})
	if err != nil {
		return err
	}
	if chat == nil {
		return fmt.Errorf("%w: chat %s", engine.ErrNotFound, chatID)
	}
	chat.Status = status
	return t.uow.ChatRepository().Update(ctx, chat)
}
