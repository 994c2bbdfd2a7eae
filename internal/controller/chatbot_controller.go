package controller

import (
	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/serverutils"
	"studyflow-be/internal/security/ratelimit"
	"studyflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler)
	Ask(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler) {
	h := r.Group("/chatbot/v1")
	h.Use(protect(ratelimit.ClassAI))
	h.Post("ask", c.Ask)
}

func (c *chatbotController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Ask(ctx.Context(), &req)
	if err != nil {
		// Retrieval failures carry detail; generation failures never reach
		// here because the service degrades them to a 200.
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ask chatbot", res))
}
