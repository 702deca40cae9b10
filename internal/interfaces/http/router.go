package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/auth"
	"github.com/sayanm085/shopnex-api/internal/application/inventory"
	"github.com/sayanm085/shopnex-api/internal/application/purchasing"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/internal/application/usecase"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// RouterDeps wires the usecases into the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ItemUC      *usecase.ItemUseCase
	DealerUC    *usecase.DealerUseCase
	CustomerUC  *usecase.CustomerUseCase
	InventoryUC *inventory.UseCase
	Purchasing  *purchasing.UseCase
	Selling     *selling.UseCase
	JWTSecret   string
}

// Router registers the API routes. Everything except health and auth requires
// a Bearer token; catalog and purchasing writes additionally require a
// manager-level role.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managerOnly := RequireRole(entity.RoleAdmin, entity.RoleManager)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", managerOnly, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", managerOnly, itemHandler.Update)
	items.Delete("/:id", managerOnly, itemHandler.Delete)

	dealers := protected.Group("/dealers")
	dealerHandler := NewDealerHandler(deps.DealerUC)
	dealers.Post("/", managerOnly, dealerHandler.Create)
	dealers.Get("/", dealerHandler.List)
	dealers.Get("/:id", dealerHandler.GetByID)
	dealers.Put("/:id", managerOnly, dealerHandler.Update)
	dealers.Delete("/:id", managerOnly, dealerHandler.Delete)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/by-phone/:phone", customerHandler.GetByPhone)
	customers.Get("/:id", customerHandler.GetByID)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Purchasing)
	purchases.Post("/", managerOnly, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Selling)
	sales.Post("/orders", saleHandler.CreateOrder)
	sales.Post("/:id/settle", saleHandler.Settle)
	sales.Get("/:id/receipt.pdf", saleHandler.ReceiptPDF)
	sales.Get("/:id", saleHandler.GetByID)

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/barcode/:code", inventoryHandler.LookupBarcode)
	inv.Get("/items/:id", inventoryHandler.ItemInventory)
	inv.Get("/low-stock", inventoryHandler.LowStock)
}
