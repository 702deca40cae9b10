package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/purchasing"
)

// PurchaseHandler serves purchase order intake and queries (protected).
type PurchaseHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseHandler builds the handler.
func NewPurchaseHandler(uc *purchasing.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create receives stock from a dealer: one purchase order, stock and batches
// committed atomically.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseFromDealerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.PurchaseFromDealer(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID returns one purchase order with its lines.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchaseOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List pages purchase orders, optionally filtered by status.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "malformed query parameters")
	}
	page.DefaultPage()
	orders, total, err := h.uc.ListPurchaseOrders(c.UserContext(), c.Query("status"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"data": orders,
		"page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}
