package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/inventory"
)

// InventoryHandler serves stock queries (protected). The barcode lookup is the
// POS hot path.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List pages stock variants with item names.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "malformed query parameters")
	}
	page.DefaultPage()
	variants, total, err := h.uc.ListVariants(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"data": variants,
		"page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// LookupBarcode resolves a scanned barcode to its variant and item data.
func (h *InventoryHandler) LookupBarcode(c *fiber.Ctx) error {
	out, err := h.uc.LookupBarcode(c.UserContext(), c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ItemInventory returns every variant of an item with its active batches.
func (h *InventoryHandler) ItemInventory(c *fiber.Ctx) error {
	out, err := h.uc.ItemInventory(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": out})
}

// LowStock lists variants at or below their minimum stock level.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	out, uerr := h.uc.ListLowStock(c.UserContext(), limit)
	if uerr != nil {
		return fail(c, uerr)
	}
	return c.JSON(fiber.Map{"data": out})
}
