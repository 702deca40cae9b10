package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
)

// SaleHandler serves the two-step checkout: build an order, then settle it
// (protected).
type SaleHandler struct {
	uc *selling.UseCase
}

// NewSaleHandler builds the handler.
func NewSaleHandler(uc *selling.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// CreateOrder prices a cart into an in_progress sale. No stock moves here.
func (h *SaleHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateSaleOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.CreateSaleOrder(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Settle completes an in_progress sale: payment, stock decrement and loyalty
// in one transaction.
func (h *SaleHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.SettleSale(c.UserContext(), c.Params("id"), GetUsername(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID returns one sale.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ReceiptPDF streams the receipt of a completed sale.
func (h *SaleHandler) ReceiptPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.SaleReceiptPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="receipt.pdf"`)
	return c.Send(pdfBytes)
}
