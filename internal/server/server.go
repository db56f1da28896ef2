package server

import (
	"errors"
	"strings"

	"sar-ambalaj-backend/internal/admin"
	"sar-ambalaj-backend/internal/audit"
	"sar-ambalaj-backend/internal/auth"
	"sar-ambalaj-backend/internal/calculator"
	"sar-ambalaj-backend/internal/config"
	"sar-ambalaj-backend/internal/logger"
	"sar-ambalaj-backend/internal/material"
	"sar-ambalaj-backend/internal/models"
	"sar-ambalaj-backend/internal/production"
	"sar-ambalaj-backend/internal/shipment"
	"sar-ambalaj-backend/internal/stock"
	"sar-ambalaj-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Eksik veya hatalı alanlar var",
			"fields": fe.Fields,
		})
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}

	logger.LogError("server", "errorHandler", c.Method()+" "+c.Path(), nil, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
	})
}

// New uygulamayı middleware ve route'larla birlikte kurar. Veritabanı
// bağlantısı önceden açılmış olmalıdır.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.RequestLogger())

	// CORS origins virgülle ayrılmış liste
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/bootstrap-admin", auth.BootstrapAdminHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	adminOnly := auth.RequireRole(models.RoleAdmin)

	protected.Get("/auth/me", auth.MeHandler())

	// Üretim
	protected.Get("/production", production.ListProductionHandler())
	protected.Post("/production", production.CreateProductionHandler())
	protected.Put("/production/:id", production.UpdateProductionHandler())
	protected.Delete("/production/:id", production.DeleteProductionHandler())

	// Ebat kesim
	protected.Get("/cut-products", production.ListCutProductsHandler())
	protected.Post("/cut-products", production.CreateCutProductHandler())
	protected.Put("/cut-products/:id", production.UpdateCutProductHandler())
	protected.Delete("/cut-products/:id", production.DeleteCutProductHandler())

	// Günlük tüketim
	protected.Get("/daily-consumption", production.ListDailyConsumptionHandler())
	protected.Get("/daily-consumption/estimate", production.EstimateDailyConsumptionHandler())
	protected.Post("/daily-consumption", production.CreateDailyConsumptionHandler())
	protected.Put("/daily-consumption/:id", production.UpdateDailyConsumptionHandler())
	protected.Delete("/daily-consumption/:id", production.DeleteDailyConsumptionHandler())

	// Sevkiyat
	protected.Get("/shipments", shipment.ListShipmentsHandler())
	protected.Post("/shipments", shipment.CreateShipmentHandler())
	protected.Put("/shipments/:id", shipment.UpdateShipmentHandler())
	protected.Delete("/shipments/:id", shipment.DeleteShipmentHandler())

	// Hammadde ve kur
	protected.Get("/materials", material.ListPurchasesHandler())
	protected.Get("/materials/current-prices", material.CurrentPricesHandler())
	protected.Post("/materials", material.CreatePurchaseHandler())
	protected.Put("/materials/:id", material.UpdatePurchaseHandler())
	protected.Delete("/materials/:id", material.DeletePurchaseHandler())
	protected.Get("/exchange-rates", material.GetExchangeRatesHandler())
	protected.Put("/exchange-rates", adminOnly, material.UpdateExchangeRatesHandler())

	// Stok
	protected.Get("/stock", stock.NormalStockHandler())
	protected.Get("/stock/cut", stock.CutStockHandler())
	protected.Get("/stock/stats", stock.StatsHandler())
	protected.Get("/stock/materials", stock.MaterialBalancesHandler())

	// Maliyet
	protected.Post("/cost-calculator", calculator.EstimateHandler(cfg))
	protected.Post("/cost-calculator/recut", calculator.RecutHandler(cfg))
	protected.Get("/cost-analysis", calculator.ListAnalysesHandler())
	protected.Post("/cost-analysis", calculator.SaveAnalysisHandler(cfg))
	protected.Delete("/cost-analysis/:id", calculator.DeleteAnalysisHandler())

	// Kullanıcı yönetimi
	users := protected.Group("/users", adminOnly)
	users.Get("/", admin.ListUsersHandler())
	users.Post("/", admin.CreateUserHandler())
	users.Put("/:id", admin.UpdateUserHandler())
	users.Delete("/:id", admin.DeleteUserHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", adminOnly, audit.UndoAuditLogHandler())

	return app
}
