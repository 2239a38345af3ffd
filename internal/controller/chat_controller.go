package controller

import (
	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/pkg/serverutils"
	"chatbot-flow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateContext(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

// RegisterRoutes exposes the conversational surface. These routes are
// consumed by end-user channels (web widgets, integrations), not the
// authoring dashboard, so they sit outside the JWT group.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/start", c.Start)
	h.Post(":id/message", c.SendMessage)
	h.Get(":id/history", c.History)
	h.Get(":id", c.Show)
	h.Put(":id/context", c.UpdateContext)
	h.Post(":id/end", c.End)
}

func (c *chatController) Start(ctx *fiber.Ctx) error {
	var req dto.StartChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StartChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start chat", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatId = chatId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ProcessMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process message", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetHistory(ctx.Context(), chatId, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	res, err := c.service.GetDetails(ctx.Context(), chatId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat details", res))
}

func (c *chatController) UpdateContext(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	var req dto.UpdateContextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatId = chatId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateContext(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update chat context", res))
}

func (c *chatController) End(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	res, err := c.service.EndChat(ctx.Context(), chatId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success end chat", res))
}
