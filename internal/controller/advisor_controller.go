package controller

import (
	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/pkg/serverutils"
	"ai-luthier-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdvisorController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
}

type advisorController struct {
	advisorService service.IAdvisorService
}

func NewAdvisorController(advisorService service.IAdvisorService) IAdvisorController {
	return &advisorController{
		advisorService: advisorService,
	}
}

func (c *advisorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/advisor/v1")
	h.Post("sessions/:id/chat", c.SendChat)
	h.Get("sessions/:id/transcript", c.Transcript)
}

// SendChat kicks off one advisory turn. The full reply comes back in the
// response body; clients that opened the session websocket see the same text
// arrive fragment by fragment while this request is running.
func (c *advisorController) SendChat(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendAdvisorChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.SendChat(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send advisor chat", res))
}

func (c *advisorController) Transcript(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.advisorService.GetTranscript(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show transcript", res))
}
