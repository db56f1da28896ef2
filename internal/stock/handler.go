package stock

import (
	"fmt"

	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/logger"
	"sar-ambalaj-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func load(dst any, order string) error {
	return database.DB.Order(order).Find(dst).Error
}

// loadInputs stok hesapları için gereken tüm kayıtları okur. Sıra eklenme
// sırasıdır, grup sırası buna bağlıdır.
func loadInputs() (Inputs, error) {
	var in Inputs
	steps := []struct {
		name string
		dst  any
	}{
		{"production", &in.Productions},
		{"cut_product", &in.CutProducts},
		{"shipment", &in.Shipments},
		{"material_purchase", &in.Purchases},
		{"daily_consumption", &in.Consumptions},
	}
	for _, s := range steps {
		if err := load(s.dst, "id asc"); err != nil {
			return Inputs{}, fmt.Errorf("%s okunamadı: %w", s.name, err)
		}
	}
	return in, nil
}

func inputsOrFail(funcName string) (Inputs, error) {
	in, err := loadInputs()
	if err != nil {
		logger.LogError("stock", funcName, "kayıtlar okunamadı", nil, err)
		return Inputs{}, fiber.NewError(fiber.StatusInternalServerError, "Stok hesaplanamadı")
	}
	return in, nil
}

// GET /api/stock
func NormalStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productions []models.Production
		var shipments []models.Shipment
		if err := load(&productions, "id asc"); err != nil {
			logger.LogError("stock", "NormalStockHandler", "üretim okunamadı", nil, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hesaplanamadı")
		}
		if err := database.DB.Where("type = ?", models.ShipmentNormal).Order("id asc").Find(&shipments).Error; err != nil {
			logger.LogError("stock", "NormalStockHandler", "sevkiyat okunamadı", nil, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hesaplanamadı")
		}
		return c.JSON(Reconcile(productions, shipments))
	}
}

// GET /api/stock/cut
func CutStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cuts []models.CutProduct
		var shipments []models.Shipment
		if err := load(&cuts, "id asc"); err != nil {
			logger.LogError("stock", "CutStockHandler", "ebat okunamadı", nil, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hesaplanamadı")
		}
		if err := database.DB.Where("type = ?", models.ShipmentCut).Order("id asc").Find(&shipments).Error; err != nil {
			logger.LogError("stock", "CutStockHandler", "sevkiyat okunamadı", nil, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hesaplanamadı")
		}
		return c.JSON(ReconcileCut(cuts, shipments))
	}
}

// GET /api/stock/stats
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := inputsOrFail("StatsHandler")
		if err != nil {
			return err
		}
		return c.JSON(ComputeStats(in))
	}
}

// GET /api/stock/materials
func MaterialBalancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := inputsOrFail("MaterialBalancesHandler")
		if err != nil {
			return err
		}
		return c.JSON(MaterialBalances(in.Purchases, in.Consumptions, in.Productions))
	}
}
