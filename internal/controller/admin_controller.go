package controller

import (
	"studyflow-be/internal/pkg/serverutils"
	"studyflow-be/internal/security/ratelimit"
	"studyflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler)
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, protect func(string) fiber.Handler) {
	h := r.Group("/admin/v1")
	h.Use(protect(ratelimit.ClassAuth))
	h.Use(serverutils.JwtMiddleware)
	h.Get("logs", c.GetLogs)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.adminService.GetLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}
