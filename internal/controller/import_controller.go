package controller

import (
	"errors"

	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/serverutils"
	"studyflow-be/internal/security/ratelimit"
	"studyflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImportController interface {
	RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler)
	SecureImport(ctx *fiber.Ctx) error
}

type importController struct {
	importService service.IImportService
}

func NewImportController(importService service.IImportService) IImportController {
	return &importController{
		importService: importService,
	}
}

func (c *importController) RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler) {
	h := r.Group("/import/v1")
	h.Use(protect(ratelimit.ClassUpload))
	h.Post("secure-import", c.SecureImport)
}

func (c *importController) SecureImport(ctx *fiber.Ctx) error {
	var req dto.SecureImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.importService.SecureImport(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrImportTooLarge) {
			return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(serverutils.ErrorResponse(413, err.Error()))
		}
		if errors.Is(err, service.ErrImportRejected) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success validate import", res))
}
