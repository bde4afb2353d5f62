package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/dto"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/service"
)

// CartHandler exposes the authenticated caller's cart.
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	items, err := h.cart.Get(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"items": items}})
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID == "" {
		return fiber.NewError(http.StatusBadRequest, "productId required")
	}

	item, err := h.cart.Add(c.Context(), principal.SubjectID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"item": item}})
}

// UpdateQuantity handles PUT /api/cart/items/:productId.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.cart.UpdateQuantity(c.Context(), principal.SubjectID, c.Params("productId"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"item": item}})
}

// Remove handles DELETE /api/cart/items/:productId.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.cart.Remove(c.Context(), principal.SubjectID, c.Params("productId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
