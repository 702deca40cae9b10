package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/usecase"
)

// DealerHandler serves the dealer roster (protected).
type DealerHandler struct {
	uc *usecase.DealerUseCase
}

// NewDealerHandler builds the handler.
func NewDealerHandler(uc *usecase.DealerUseCase) *DealerHandler {
	return &DealerHandler{uc: uc}
}

// Create registers a dealer.
func (h *DealerHandler) Create(c *fiber.Ctx) error {
	var in dto.DealerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.CreateDealer(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID returns one dealer.
func (h *DealerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDealer(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List pages active dealers.
func (h *DealerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "malformed query parameters")
	}
	page.DefaultPage()
	dealers, total, err := h.uc.ListDealers(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"data": dealers,
		"page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Update patches dealer fields.
func (h *DealerHandler) Update(c *fiber.Ctx) error {
	var in dto.DealerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.UpdateDealer(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete soft-deletes a dealer.
func (h *DealerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeactivateDealer(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
