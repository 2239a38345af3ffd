package controller

import (
	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/pkg/serverutils"
	"chatbot-flow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkflowController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddNode(ctx *fiber.Ctx) error
	DeleteNode(ctx *fiber.Ctx) error
	AddTransition(ctx *fiber.Ctx) error
	DeleteTransition(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type workflowController struct {
	service   service.IWorkflowService
	analytics service.IAnalyticsService
}

func NewWorkflowController(svc service.IWorkflowService, analytics service.IAnalyticsService) IWorkflowController {
	return &workflowController{service: svc, analytics: analytics}
}

func (c *workflowController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workflow/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/nodes", c.AddNode)
	h.Delete(":id/nodes/:nodeId", c.DeleteNode)
	h.Post(":id/transitions", c.AddTransition)
	h.Delete(":id/transitions/:transitionId", c.DeleteTransition)
	h.Post(":id/publish", c.Publish)
	h.Get(":id/stats", c.Stats)
}

func (c *workflowController) Create(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	var req dto.CreateWorkflowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create workflow", res))
}

func (c *workflowController) GetAll(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	botId, err := uuid.Parse(ctx.Query("bot_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bot_id query parameter is required")
	}

	res, err := c.service.GetAll(ctx.Context(), userId, botId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all workflows", res))
}

func (c *workflowController) Show(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	res, err := c.service.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show workflow", res))
}

func (c *workflowController) Delete(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete workflow", nil))
}

func (c *workflowController) AddNode(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	var req dto.AddNodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.WorkflowId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddNode(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add node", res))
}

func (c *workflowController) DeleteNode(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}
	nodeId, err := uuid.Parse(ctx.Params("nodeId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid node id")
	}

	if err := c.service.DeleteNode(ctx.Context(), userId, id, nodeId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete node", nil))
}

func (c *workflowController) AddTransition(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	var req dto.AddTransitionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddTransition(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add transition", res))
}

func (c *workflowController) DeleteTransition(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}
	transitionId, err := uuid.Parse(ctx.Params("transitionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transition id")
	}

	if err := c.service.DeleteTransition(ctx.Context(), userId, id, transitionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete transition", nil))
}

func (c *workflowController) Publish(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	res, err := c.service.Publish(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success publish workflow", res))
}

func (c *workflowController) Stats(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workflow id")
	}

	// Ownership gate before exposing aggregates.
	if _, err := c.service.Show(ctx.Context(), userId, id); err != nil {
		return err
	}

	res, err := c.analytics.WorkflowStats(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get workflow stats", res))
}

func authUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}
