package service

import (
	"context"
	"fmt"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"

	"github.com/google/uuid"
)

type IBotService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBotRequest) (*dto.CreateBotResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.BotResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.BotResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateBotRequest) (*dto.UpdateBotResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type botService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewBotService(uowFactory unitofwork.RepositoryFactory) IBotService {
	return &botService{uowFactory: uowFactory}
}

func (s *botService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBotRequest) (*dto.CreateBotResponse, error) {
	bot := &entity.Bot{
		UserId:   userId,
		Name:     req.Name,
		IsActive: true,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.BotRepository().Create(ctx, bot); err != nil {
		return nil, err
	}
	return &dto.CreateBotResponse{Id: bot.Id}, nil
}

func (s *botService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.BotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bots, err := uow.BotRepository().FindAll(ctx, specification.Filter("user_id", userId))
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BotResponse, 0, len(bots))
	for _, bot := range bots {
		result = append(result, &dto.BotResponse{
			Id:        bot.Id,
			Name:      bot.Name,
			IsActive:  bot.IsActive,
			CreatedAt: bot.CreatedAt,
			UpdatedAt: bot.UpdatedAt,
		})
	}
	return result, nil
}

func (s *botService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.BotResponse, error) {
	bot, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return &dto.BotResponse{
		Id:        bot.Id,
		Name:      bot.Name,
		IsActive:  bot.IsActive,
		CreatedAt: bot.CreatedAt,
		UpdatedAt: bot.UpdatedAt,
	}, nil
}

func (s *botService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateBotRequest) (*dto.UpdateBotResponse, error) {
	bot, err := s.findOwned(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	bot.Name = req.Name
	if req.IsActive != nil {
		bot.IsActive = *req.IsActive
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.BotRepository().Update(ctx, bot); err != nil {
		return nil, err
	}
	return &dto.UpdateBotResponse{Id: bot.Id}, nil
}

func (s *botService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userId, id); err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BotRepository().Delete(ctx, id)
}

func (s *botService) findOwned(ctx context.Context, userId, id uuid.UUID) (*entity.Bot, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bot, err := uow.BotRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, fmt.Errorf("%w: bot %s", engine.ErrNotFound, id)
	}
	return bot, nil
}
