package production

import (
	"fmt"
	"strings"

	"sar-ambalaj-backend/internal/audit"
	"sar-ambalaj-backend/internal/costing"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/models"
	"sar-ambalaj-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type DailyConsumptionRequest struct {
	Date              string  `json:"date" validate:"required"`
	Machine           string  `json:"machine" validate:"required,max=50"`
	TotalProductionM2 float64 `json:"total_production_m2" validate:"gte=0"`
	Petkim            float64 `json:"petkim" validate:"gte=0"`
	Estol             float64 `json:"estol" validate:"gte=0"`
	Talk              float64 `json:"talk" validate:"gte=0"`
	Gaz               float64 `json:"gaz" validate:"gte=0"`
	Sari              float64 `json:"sari" validate:"gte=0"`
	Fire              float64 `json:"fire" validate:"gte=0"`
	Notes             string  `json:"notes" validate:"max=255"`
}

func (r DailyConsumptionRequest) apply(dc *models.DailyConsumption) error {
	d, err := validation.Date(r.Date)
	if err != nil {
		return err
	}
	dc.Date = d
	dc.Machine = strings.TrimSpace(r.Machine)
	dc.TotalProductionM2 = r.TotalProductionM2
	dc.Petkim = r.Petkim
	dc.Estol = r.Estol
	dc.Talk = r.Talk
	dc.Gaz = r.Gaz
	dc.Sari = r.Sari
	dc.Fire = r.Fire
	dc.Notes = strings.TrimSpace(r.Notes)
	return nil
}

// GET /api/daily-consumption?from=...&to=...&machine=...
func ListDailyConsumptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.DailyConsumption{}))
		if err != nil {
			return err
		}
		if machine := c.Query("machine"); machine != "" {
			dbq = dbq.Where("machine = ?", machine)
		}

		var rows []models.DailyConsumption
		if err := dbq.Order("date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tüketim kayıtları listelenemedi")
		}
		return c.JSON(rows)
	}
}

// GET /api/daily-consumption/estimate?from=...&to=...
// Üretim kayıtlarından tarih + makine bazında tahmini tüketim.
func EstimateDailyConsumptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.Production{}))
		if err != nil {
			return err
		}

		var rows []models.Production
		if err := dbq.Order("date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim kayıtları okunamadı")
		}
		return c.JSON(costing.ConsumptionFromProduction(rows))
	}
}

// POST /api/daily-consumption
func CreateDailyConsumptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DailyConsumptionRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		var dc models.DailyConsumption
		if err := body.apply(&dc); err != nil {
			return err
		}
		if err := database.DB.Create(&dc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tüketim kaydedilemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityDailyConsumption,
			EntityID:    dc.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Günlük tüketim eklendi: %s %s", dc.Machine, dc.Date.Format(validation.DateLayout)),
			After:       dc,
		})

		return c.Status(fiber.StatusCreated).JSON(dc)
	}
}

// PUT /api/daily-consumption/:id
func UpdateDailyConsumptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var dc models.DailyConsumption
		if err := database.DB.First(&dc, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tüketim kaydı bulunamadı")
		}

		var body DailyConsumptionRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		before := dc
		if err := body.apply(&dc); err != nil {
			return err
		}
		if err := database.DB.Save(&dc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tüketim güncellenemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityDailyConsumption,
			EntityID:    dc.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Günlük tüketim güncellendi: %s %s", dc.Machine, dc.Date.Format(validation.DateLayout)),
			Before:      before,
			After:       dc,
		})

		return c.JSON(dc)
	}
}

// DELETE /api/daily-consumption/:id
func DeleteDailyConsumptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var dc models.DailyConsumption
		if err := database.DB.First(&dc, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tüketim kaydı bulunamadı")
		}
		if err := database.DB.Delete(&models.DailyConsumption{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tüketim silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityDailyConsumption,
			EntityID:    dc.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Günlük tüketim silindi: %s %s", dc.Machine, dc.Date.Format(validation.DateLayout)),
			Before:      dc,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
