package controller

import (
	"getscience-be/internal/dto"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	ListPublished(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	UpdateStaff(ctx *fiber.Ctx) error
	GetStaff(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type eventController struct {
	service service.IEventService
}

func NewEventController(service service.IEventService) IEventController {
	return &eventController{service: service}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/events")
	h.Get("/", c.ListPublished)

	auth := h.Group("", serverutils.JwtMiddleware)
	auth.Post("/", c.Create)
	auth.Get("/mine", c.ListMine)
	auth.Get("/:id", c.Get)
	auth.Put("/:id", c.Update)
	auth.Post("/:id/publish", c.Publish)
	auth.Post("/:id/cancel", c.Cancel)
	auth.Put("/:id/staff", c.UpdateStaff)
	auth.Get("/:id/staff", c.GetStaff)
	auth.Delete("/:id", c.Delete)
}

func eventIDParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewBadRequestError("Invalid event id")
	}
	return id, nil
}

func (c *eventController) Create(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateEvent(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Event created", res)
}

func (c *eventController) Update(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}
	req.Id = eventID

	res, err := c.service.UpdateEvent(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Event updated", res)
}

func (c *eventController) Get(ctx *fiber.Ctx) error {
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetEvent(ctx.UserContext(), eventID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *eventController) ListMine(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMyEvents(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *eventController) ListPublished(ctx *fiber.Ctx) error {
	res, err := c.service.ListPublishedEvents(ctx.UserContext())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *eventController) Publish(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.PublishEvent(ctx.UserContext(), userID, eventID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Event published", res)
}

func (c *eventController) Cancel(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CancelEvent(ctx.UserContext(), userID, eventID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Event cancelled", res)
}

func (c *eventController) UpdateStaff(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateStaffRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}
	req.EventId = eventID

	res, err := c.service.UpdateStaff(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Staff updated", res)
}

func (c *eventController) GetStaff(ctx *fiber.Ctx) error {
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetStaff(ctx.UserContext(), eventID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *eventController) Delete(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := eventIDParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteEvent(ctx.UserContext(), userID, eventID); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Event deleted", nil)
}
