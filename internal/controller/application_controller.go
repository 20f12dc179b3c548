package controller

import (
	"getscience-be/internal/dto"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IApplicationController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	ListForEvent(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	Decide(ctx *fiber.Ctx) error
	Withdraw(ctx *fiber.Ctx) error
}

type applicationController struct {
	service service.IApplicationService
}

func NewApplicationController(service service.IApplicationService) IApplicationController {
	return &applicationController{service: service}
}

func (c *applicationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/applications", serverutils.JwtMiddleware)
	h.Get("/mine", c.ListMine)
	h.Post("/:id/decide", c.Decide)
	h.Post("/:id/withdraw", c.Withdraw)

	e := r.Group("/events/:eventId/applications", serverutils.JwtMiddleware)
	e.Post("/", c.Submit)
	e.Get("/", c.ListForEvent)
}

// Submit accepts multipart form data: a "message" field plus any number
// of "attachments" files.
func (c *applicationController) Submit(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(ctx.Params("eventId"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid event id")
	}

	req := dto.SubmitApplicationRequest{
		EventId: eventID,
		Message: ctx.FormValue("message"),
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	var uploads []service.AttachmentUpload
	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		files := form.File["attachments"]
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				return err
			}
			defer file.Close()
			uploads = append(uploads, service.AttachmentUpload{
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Size:        fileHeader.Size,
				Reader:      file,
			})
		}
	}

	res, err := c.service.Submit(ctx.UserContext(), userID, &req, uploads)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Application submitted", res)
}

func (c *applicationController) ListForEvent(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(ctx.Params("eventId"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid event id")
	}

	res, err := c.service.ListForEvent(ctx.UserContext(), eventID, userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *applicationController) ListMine(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMine(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *applicationController) Decide(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	applicationID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid application id")
	}

	var req dto.DecideApplicationRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}
	req.ApplicationId = applicationID

	res, err := c.service.Decide(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Application decided", res)
}

func (c *applicationController) Withdraw(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromLocals(ctx)
	if err != nil {
		return err
	}
	applicationID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid application id")
	}

	if err := c.service.Withdraw(ctx.UserContext(), userID, applicationID); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Application withdrawn", nil)
}
