package controller

import (
	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/pkg/serverutils"
	"chatbot-flow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIntentController interface {
	RegisterRoutes(r fiber.Router)
	Train(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type intentController struct {
	service service.IIntentService
}

func NewIntentController(service service.IIntentService) IIntentController {
	return &intentController{service: service}
}

func (c *intentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workflow/v1/:workflowId/intents")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Train)
	h.Delete("", c.Clear)
}

func (c *intentController) Train(ctx *fiber.Ctx) error {
	workflowId, err := uuid.Parse(ctx.Params("workflowId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	var req dto.TrainIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.WorkflowId = workflowId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TrainIntent(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success train intent", res))
}

func (c *intentController) GetAll(ctx *fiber.Ctx) error {
	workflowId, err := uuid.Parse(ctx.Params("workflowId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	res, err := c.service.GetIntents(ctx.Context(), workflowId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get intents", res))
}

func (c *intentController) Clear(ctx *fiber.Ctx) error {
	workflowId, err := uuid.Parse(ctx.Params("workflowId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	if err := c.service.ClearIntents(ctx.Context(), workflowId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear intents", nil))
}
