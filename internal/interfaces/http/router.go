package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/auth"
	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
	"github.com/jmorales-dev/granolapp-api/internal/application/production"
	"github.com/jmorales-dev/granolapp-api/internal/application/reports"
	"github.com/jmorales-dev/granolapp-api/internal/application/sales"
	"github.com/jmorales-dev/granolapp-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	CatalogUC     *usecase.CatalogUseCase
	CustomerUC    *usecase.CustomerUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	RawMaterialUC *usecase.RawMaterialUseCase
	ExpenseUC     *usecase.ExpenseUseCase
	UserUC        *usecase.UserUseCase
	RoleUC        *usecase.RoleUseCase
	SettingsUC    *usecase.SettingsUseCase
	StockLedger   *inventory.StockLedger
	InventoryQ    *inventory.Queries
	TransferUC    *inventory.TransferUseCase
	RecipeUC      *production.RecipeUseCase
	BatchUC       *production.BatchUseCase
	SaleUC        *sales.SaleUseCase
	ConsignmentUC *sales.ConsignmentUseCase
	ReportUC      *reports.ReportUseCase
	JWTSecret     string
	UploadsDir    string
}

// Router registra las rutas de la API. Cada grupo de rutas protegidas pasa
// por AuthMiddleware y por RequirePermission con el módulo correspondiente;
// el rol admin tiene paso libre dentro del checker.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo para admins (módulo users).
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", RequirePermission("users", deps.RoleUC), authHandler.Register)

	// Products (incluye categorías y tipos de empaque)
	productGuard := RequirePermission("products", deps.RoleUC)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products", productGuard)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories", productGuard)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Delete("/:id", catalogHandler.DeleteCategory)

	packagingTypes := protected.Group("/packaging-types", productGuard)
	packagingTypes.Post("/", catalogHandler.CreatePackagingType)
	packagingTypes.Get("/", catalogHandler.ListPackagingTypes)
	packagingTypes.Delete("/:id", catalogHandler.DeletePackagingType)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers", RequirePermission("customers", deps.RoleUC))
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Deactivate)

	// Warehouses e inventario
	inventoryGuard := RequirePermission("inventory", deps.RoleUC)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses", inventoryGuard)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.InventoryQ)
	invGroup := protected.Group("/inventory", inventoryGuard)
	invGroup.Post("/update-stock", inventoryHandler.UpdateStock)
	invGroup.Get("/warehouse/:id", inventoryHandler.StockByWarehouse)
	invGroup.Get("/product/:id", inventoryHandler.StockByProduct)
	invGroup.Delete("/", inventoryHandler.DeleteItem)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/movements/:ref_type/:ref_id", inventoryHandler.MovementsByRef)

	// Transfers
	transferHandler := NewTransferHandler(deps.TransferUC, deps.InventoryQ)
	transfers := protected.Group("/transfers", RequirePermission("transfers", deps.RoleUC))
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)

	// Raw materials
	rawMaterialHandler := NewRawMaterialHandler(deps.RawMaterialUC)
	rawMaterials := protected.Group("/raw-materials", RequirePermission("raw_materials", deps.RoleUC))
	rawMaterials.Post("/", rawMaterialHandler.Create)
	rawMaterials.Get("/", rawMaterialHandler.List)
	rawMaterials.Get("/:id", rawMaterialHandler.GetByID)
	rawMaterials.Put("/:id", rawMaterialHandler.Update)
	rawMaterials.Post("/:id/adjust-stock", rawMaterialHandler.AdjustStock)
	rawMaterials.Delete("/:id", rawMaterialHandler.Deactivate)

	// Production (recetas y lotes)
	productionGuard := RequirePermission("production", deps.RoleUC)
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes := protected.Group("/recipes", productionGuard)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Deactivate)
	recipes.Post("/:id/ingredients", recipeHandler.AddIngredient)
	recipes.Delete("/ingredients/:ingredient_id", recipeHandler.RemoveIngredient)

	batchHandler := NewBatchHandler(deps.BatchUC)
	batches := protected.Group("/batches", productionGuard)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Post("/:id/complete", batchHandler.Complete)
	batches.Put("/:id/cancel", batchHandler.Cancel)
	batches.Delete("/:id", batchHandler.Delete)

	// Sales
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := protected.Group("/sales", RequirePermission("sales", deps.RoleUC))
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id/cancel", saleHandler.Cancel)

	// Consignments
	consignmentHandler := NewConsignmentHandler(deps.ConsignmentUC)
	consignments := protected.Group("/consignments", RequirePermission("consignments", deps.RoleUC))
	consignments.Post("/", consignmentHandler.Create)
	consignments.Get("/", consignmentHandler.List)
	consignments.Get("/:id", consignmentHandler.GetByID)
	consignments.Delete("/:id", consignmentHandler.Delete)
	consignments.Post("/:id/visits", consignmentHandler.ScheduleVisit)
	consignments.Put("/visits/:visit_id/complete", consignmentHandler.CompleteVisit)
	consignments.Post("/:id/collections", consignmentHandler.RecordCollection)

	// Expenses
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.UploadsDir)
	expenses := protected.Group("/expenses", RequirePermission("expenses", deps.RoleUC))
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports", RequirePermission("reports", deps.RoleUC))
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/sales/pdf", reportHandler.SalesPDF)
	reportsGroup.Get("/expenses", reportHandler.Expenses)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)

	// Users y roles (módulo users)
	usersGuard := RequirePermission("users", deps.RoleUC)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", usersGuard)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)

	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := protected.Group("/roles", usersGuard)
	roles.Post("/", roleHandler.Create)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Put("/:id", roleHandler.Update)
	roles.Put("/:id/permissions", roleHandler.UpdatePermissions)
	roles.Delete("/:id", roleHandler.Delete)

	// Settings
	settingHandler := NewSettingHandler(deps.SettingsUC)
	settings := protected.Group("/settings", RequirePermission("settings", deps.RoleUC))
	settings.Get("/", settingHandler.List)
	settings.Get("/:key", settingHandler.Get)
	settings.Put("/:key", settingHandler.Set)
}
