package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/gestionale-api/internal/application/analytics"
	"github.com/jhoicas/gestionale-api/internal/application/auth"
	"github.com/jhoicas/gestionale-api/internal/application/billing"
	"github.com/jhoicas/gestionale-api/internal/application/inventory"
	"github.com/jhoicas/gestionale-api/internal/application/purchasing"
	"github.com/jhoicas/gestionale-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC      *usecase.CustomerUseCase
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	OrderUC         *billing.OrderUseCase
	InvoiceUC       *billing.InvoiceUseCase
	InvoicePDF      *billing.PDFUseCase
	SupplierOrderUC *purchasing.SupplierOrderUseCase
	PriceListUC     *purchasing.PriceListUseCase
	MovementUC      *inventory.MovementUseCase
	MinimumStockUC  *inventory.MinimumStockUseCase
	NotificationUC  *inventory.NotificationUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token salvo JWT_SECRET vacío)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Put("/:id", productHandler.Replace)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/deactivate", productHandler.Deactivate)
	products.Post("/:id/activate", productHandler.Activate)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Get("/:id/items", orderHandler.ListItems)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/items", invoiceHandler.ListItems)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	purchasingHandler := NewPurchasingHandler(deps.SupplierOrderUC, deps.PriceListUC)
	supplierOrders := protected.Group("/supplier-orders")
	supplierOrders.Get("/", purchasingHandler.ListOrders)
	supplierOrders.Post("/", purchasingHandler.CreateOrder)
	supplierOrders.Get("/:id", purchasingHandler.GetOrder)
	supplierOrders.Put("/:id", purchasingHandler.UpdateOrder)
	supplierOrders.Delete("/:id", purchasingHandler.DeleteOrder)
	supplierOrders.Get("/:id/items", purchasingHandler.ListOrderItems)
	supplierOrders.Post("/:id/receive", purchasingHandler.ReceiveOrder)

	priceLists := protected.Group("/price-lists")
	priceLists.Get("/", purchasingHandler.ListPrices)
	priceLists.Post("/", purchasingHandler.CreatePrice)
	priceLists.Get("/:id", purchasingHandler.GetPrice)
	priceLists.Put("/:id", purchasingHandler.UpdatePrice)
	priceLists.Delete("/:id", purchasingHandler.DeletePrice)

	warehouseHandler := NewWarehouseHandler(deps.MinimumStockUC, deps.NotificationUC)
	minimum := protected.Group("/minimum-stock")
	minimum.Get("/", warehouseHandler.ListMinimum)
	minimum.Get("/:productId", warehouseHandler.GetMinimum)
	minimum.Put("/:productId", warehouseHandler.UpsertMinimum)
	minimum.Delete("/:productId", warehouseHandler.DeleteMinimum)

	warehouse := protected.Group("/warehouse")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.Replenishment)
	warehouse.Get("/movements", inventoryHandler.ListMovements)
	warehouse.Post("/movements", inventoryHandler.RegisterMovement)
	warehouse.Get("/movements/:id", inventoryHandler.GetMovement)
	warehouse.Put("/movements/:id", inventoryHandler.UpdateMovement)
	warehouse.Delete("/movements/:id", inventoryHandler.DeleteMovement)
	warehouse.Get("/replenishment", inventoryHandler.Replenishment)

	warehouse.Get("/notifications", warehouseHandler.ListNotifications)
	warehouse.Post("/notifications", warehouseHandler.CreateNotification)
	warehouse.Get("/notifications/:id", warehouseHandler.GetNotification)
	warehouse.Put("/notifications/:id", warehouseHandler.UpdateNotification)
	warehouse.Delete("/notifications/:id", warehouseHandler.DeleteNotification)
	warehouse.Post("/notifications/:id/read", warehouseHandler.MarkRead)
	warehouse.Post("/notifications/:id/resolve", warehouseHandler.Resolve)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
