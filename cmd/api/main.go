package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jmorales-dev/granolapp-api/internal/application/auth"
	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
	"github.com/jmorales-dev/granolapp-api/internal/application/production"
	"github.com/jmorales-dev/granolapp-api/internal/application/reports"
	"github.com/jmorales-dev/granolapp-api/internal/application/sales"
	"github.com/jmorales-dev/granolapp-api/internal/application/usecase"
	infrapdf "github.com/jmorales-dev/granolapp-api/internal/infrastructure/pdf"
	"github.com/jmorales-dev/granolapp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmorales-dev/granolapp-api/internal/interfaces/http"
	"github.com/jmorales-dev/granolapp-api/pkg/config"
	"github.com/jmorales-dev/granolapp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("crear directorio de uploads")
	}

	// Repositorios sobre el pool (las transacciones construyen los suyos).
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	packagingTypeRepo := postgres.NewPackagingTypeRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	rawMaterialRepo := postgres.NewRawMaterialRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	batchPackRepo := postgres.NewBatchPackagingRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	consRepo := postgres.NewConsignmentRepository(pool)
	visitRepo := postgres.NewConsignmentVisitRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, invRepo)
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, packagingTypeRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	rawMaterialUC := usecase.NewRawMaterialUseCase(rawMaterialRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo)
	roleUC := usecase.NewRoleUseCase(roleRepo)
	settingsUC := usecase.NewSettingsUseCase(settingRepo)

	stockLedger := inventory.NewStockLedger(txRunner, productRepo, warehouseRepo)
	inventoryQ := inventory.NewQueries(invRepo, movRepo, transferRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, productRepo, warehouseRepo)

	recipeUC := production.NewRecipeUseCase(recipeRepo, rawMaterialRepo)
	batchUC := production.NewBatchUseCase(
		txRunner, batchRepo, batchPackRepo, recipeRepo,
		productRepo, warehouseRepo, cfg.Production.DeductionPolicy,
	)

	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, productRepo, warehouseRepo, customerRepo)
	consignmentUC := sales.NewConsignmentUseCase(txRunner, consRepo, visitRepo, saleRepo, customerRepo, productRepo)

	// PDF: reporte de ventas con el nombre del negocio como encabezado
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := reports.NewReportUseCase(reportRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		CatalogUC:     catalogUC,
		CustomerUC:    customerUC,
		WarehouseUC:   warehouseUC,
		RawMaterialUC: rawMaterialUC,
		ExpenseUC:     expenseUC,
		UserUC:        userUC,
		RoleUC:        roleUC,
		SettingsUC:    settingsUC,
		StockLedger:   stockLedger,
		InventoryQ:    inventoryQ,
		TransferUC:    transferUC,
		RecipeUC:      recipeUC,
		BatchUC:       batchUC,
		SaleUC:        saleUC,
		ConsignmentUC: consignmentUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
		UploadsDir:    cfg.Uploads.Dir,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
