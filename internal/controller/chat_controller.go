package controller

import (
	"getscience-be/internal/dto"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetOrCreate(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	UnreadChatCount(ctx *fiber.Ctx) error
	GetParticipants(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chats", serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Get("/unread-count", c.UnreadChatCount)
	h.Get("/:id", c.Get)
	h.Get("/:id/messages", c.GetMessages)
	h.Post("/:id/messages", c.SendMessage)
	h.Post("/:id/read", c.MarkRead)
	h.Get("/:id/participants", c.GetParticipants)

	e := r.Group("/events/:eventId/chat", serverutils.JwtMiddleware)
	e.Post("/", c.GetOrCreate)
}

func chatIDParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewBadRequestError("Invalid chat id")
	}
	return id, nil
}

func (c *chatController) GetOrCreate(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(ctx.Params("eventId"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid event id")
	}

	res, err := c.service.GetOrCreateChat(ctx.UserContext(), eventID, userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListChats(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *chatController) Get(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetChat(ctx.UserContext(), chatID, userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetMessages(ctx.UserContext(), chatID, userID, limit, offset)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), chatID, userID, req.Content)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Message sent", res)
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.MarkRead(ctx.UserContext(), chatID, userID); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", nil)
}

func (c *chatController) UnreadChatCount(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}

	count, err := c.service.UnreadChatCount(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", dto.UnreadChatCountResponse{Count: count})
}

func (c *chatController) GetParticipants(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetParticipants(ctx.UserContext(), chatID, userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}
