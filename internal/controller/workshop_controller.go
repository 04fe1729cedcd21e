package controller

import (
	"io"
	"strings"

	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/pkg/serverutils"
	"ai-luthier-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkshopController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	Vocabulary(ctx *fiber.Ctx) error
	UpdateSpec(ctx *fiber.Ctx) error
	ApplyPreset(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	Usage(ctx *fiber.Ctx) error
}

type workshopController struct {
	workshopService service.IWorkshopService
	auditService    service.IAuditService
}

func NewWorkshopController(workshopService service.IWorkshopService, auditService service.IAuditService) IWorkshopController {
	return &workshopController{
		workshopService: workshopService,
		auditService:    auditService,
	}
}

func (c *workshopController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workshop/v1")
	h.Get("vocabulary", c.Vocabulary)
	h.Get("usage", c.Usage)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id", c.ShowSession)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Put("sessions/:id/spec", c.UpdateSpec)
	h.Post("sessions/:id/preset", c.ApplyPreset)
	h.Post("sessions/:id/analyze", c.Analyze)
	h.Post("sessions/:id/generate", c.Generate)
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

func (c *workshopController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.workshopService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *workshopController) ShowSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.workshopService.GetSession(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *workshopController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.workshopService.DeleteSession(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

func (c *workshopController) Vocabulary(ctx *fiber.Ctx) error {
	res, err := c.workshopService.GetVocabulary(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show vocabulary", res))
}

func (c *workshopController) Usage(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show usage", c.auditService.Snapshot()))
}

func (c *workshopController) UpdateSpec(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSpecRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workshopService.UpdateSpec(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update spec", res))
}

func (c *workshopController) ApplyPreset(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ApplyPresetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workshopService.ApplyPreset(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply preset", res))
}

// Analyze takes a multipart upload under the "image" field. Only image
// payloads are accepted; the detected MIME type travels with the bytes all
// the way to the model.
func (c *workshopController) Analyze(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing image upload under field 'image'")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "uploaded file is not an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded image")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded image")
	}

	res, err := c.workshopService.Analyze(ctx.Context(), id, image, mimeType)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze guitar photo", res))
}

func (c *workshopController) Generate(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.workshopService.Generate(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate rendering", res))
}
