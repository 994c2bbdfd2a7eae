package controller

import (
	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/serverutils"
	"studyflow-be/internal/security/ratelimit"
	"studyflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler)
	EmbedFile(ctx *fiber.Ctx) error
}

type ingestController struct {
	ingestService service.IIngestService
}

func NewIngestController(ingestService service.IIngestService) IIngestController {
	return &ingestController{
		ingestService: ingestService,
	}
}

func (c *ingestController) RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler) {
	h := r.Group("/ingest/v1")
	h.Use(protect(ratelimit.ClassUpload))
	h.Post("embed-file", c.EmbedFile)
}

func (c *ingestController) EmbedFile(ctx *fiber.Ctx) error {
	var req dto.EmbedFileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req.Record); err != nil {
		return err
	}

	res, err := c.ingestService.EmbedFile(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success embed file", res))
}
