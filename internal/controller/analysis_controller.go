package controller

import (
	"errors"

	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/serverutils"
	"studyflow-be/internal/security/ratelimit"
	"studyflow-be/internal/service"
	"studyflow-be/pkg/llm/fallback"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler)
	Analyze(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler) {
	h := r.Group("/analysis/v1")
	h.Use(protect(ratelimit.ClassAI))
	h.Post("analyze", c.Analyze)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Analyze(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, fallback.ErrExhausted) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "AI analysis is temporarily unavailable, please try again later"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze", res))
}
