package controller

import (
	"exam-companion-be/internal/dto"
	"exam-companion-be/internal/pkg/serverutils"
	"exam-companion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAccessController interface {
	RegisterRoutes(r fiber.Router)
	Redeem(ctx *fiber.Ctx) error
	Catalog(ctx *fiber.Ctx) error
}

type accessController struct {
	service service.IAccessService
}

func NewAccessController(service service.IAccessService) IAccessController {
	return &accessController{service: service}
}

func (c *accessController) RegisterRoutes(r fiber.Router) {
	r.Post("/access", c.Redeem)
	r.Get("/catalog", c.Catalog)
}

func (c *accessController) Redeem(ctx *fiber.Ctx) error {
	var req dto.RedeemAccessCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	res, err := c.service.Redeem(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Access code redeemed",
		"data":    res,
	})
}

func (c *accessController) Catalog(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Catalog retrieved",
		"data":    c.service.Catalog(ctx.Context()),
	})
}
