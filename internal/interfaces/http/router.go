package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/auth"
	"github.com/jhoicas/Puntoventa-api/internal/application/capital"
	"github.com/jhoicas/Puntoventa-api/internal/application/checkout"
	"github.com/jhoicas/Puntoventa-api/internal/application/inventory"
	"github.com/jhoicas/Puntoventa-api/internal/application/usecase"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	OutletUC    *usecase.OutletUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	CheckoutUC  *checkout.UseCase
	ReceiptUC   *checkout.ReceiptUseCase
	InventoryUC *inventory.UseCase
	CapitalUC   *capital.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Outlet propio (protegido)
	outletHandler := NewOutletHandler(deps.OutletUC)
	protected.Get("/outlets/me", outletHandler.GetMine)

	// Products (protegido; precio y catálogo los gestiona el admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Put("/:id/price", RequireRole(entity.RoleAdmin), productHandler.SetPriceRule)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Customers y tiers (protegido)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Post("/", customerHandler.CreateCustomer)
	customers.Get("/", customerHandler.ListCustomers)
	customers.Put("/:id", customerHandler.UpdateCustomer)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.DeleteCustomer)

	tiers := protected.Group("/tiers", RequireRole(entity.RoleAdmin))
	tiers.Post("/", customerHandler.CreateTier)
	tiers.Get("/", customerHandler.ListTiers)
	tiers.Put("/:id", customerHandler.UpdateTier)
	tiers.Put("/:id/overrides", customerHandler.SetTierOverride)
	tiers.Delete("/:id/overrides/:productId", customerHandler.DeleteTierOverride)
	tiers.Delete("/:id", customerHandler.DeleteTier)

	// Checkout (protegido; cajero y admin)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	checkoutGroup := protected.Group("/checkout", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	checkoutGroup.Post("/", checkoutHandler.Checkout)
	checkoutGroup.Get("/quote", checkoutHandler.QuotePrice)

	// Sales (protegido)
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.ReceiptUC)
	sales := protected.Group("/sales")
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)
	sales.Post("/:id/void", RequireRole(entity.RoleAdmin), saleHandler.Void)

	// Inventory (protegido; restock y correcciones para admin y bodeguero)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/restock", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Restock)
	invGroup.Post("/corrections", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Correct)
	invGroup.Get("/:productId", inventoryHandler.GetState)
	invGroup.Get("/:productId/events", inventoryHandler.ListEvents)

	// Capital (protegido; solo admin)
	capitalHandler := NewCapitalHandler(deps.CapitalUC)
	capitalGroup := protected.Group("/capital", RequireRole(entity.RoleAdmin))
	capitalGroup.Post("/entries", capitalHandler.RecordEntry)
	capitalGroup.Get("/entries", capitalHandler.ListEntries)
	capitalGroup.Get("/balance", capitalHandler.GetBalance)
}
