package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/usecase"
)

// CustomerHandler serves loyalty customer queries (protected). Customers are
// created through the sale flow, never here.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// GetByID returns one customer.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByPhone returns the customer registered under a phone number.
func (h *CustomerHandler) GetByPhone(c *fiber.Ctx) error {
	out, err := h.uc.FindByPhone(c.UserContext(), c.Params("phone"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List pages customers.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "malformed query parameters")
	}
	page.DefaultPage()
	customers, total, err := h.uc.ListCustomers(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"data": customers,
		"page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}
