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
	"github.com/google/uuid"
)

// M2 istemciden alınmaz, sunucuda hesaplanır.
type ProductionRequest struct {
	Date          string               `json:"date" validate:"required"` // "2025-12-09"
	Machine       string               `json:"machine" validate:"required,max=50"`
	Thickness     string               `json:"thickness" validate:"required,max=20"`
	WidthCm       float64              `json:"width_cm" validate:"gt=0"`
	LengthM       float64              `json:"length_m" validate:"gt=0"`
	Quantity      int                  `json:"quantity" validate:"gte=1"`
	SpoolType     string               `json:"spool_type"`
	Color         string               `json:"color" validate:"max=50"`
	ColorCategory models.ColorCategory `json:"color_category" validate:"omitempty,oneof=Doğal Renkli"`
}

// colorCategoryOf renk kategorisi verilmemişse renkten türetir.
func colorCategoryOf(color string, given models.ColorCategory) models.ColorCategory {
	if given != "" {
		return given
	}
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "", "doğal", "dogal", "natural", "naturel":
		return models.ColorNatural
	}
	return models.ColorColored
}

func (r ProductionRequest) apply(p *models.Production) error {
	d, err := validation.Date(r.Date)
	if err != nil {
		return err
	}

	p.Date = d
	p.Machine = strings.TrimSpace(r.Machine)
	p.Thickness = strings.TrimSpace(r.Thickness)
	p.WidthCm = r.WidthCm
	p.LengthM = r.LengthM
	p.Quantity = r.Quantity
	p.SpoolType = models.ParseSpoolType(r.SpoolType)
	p.Color = strings.TrimSpace(r.Color)
	p.ColorCategory = colorCategoryOf(p.Color, r.ColorCategory)
	p.M2 = costing.Round2(costing.RollArea(p.WidthCm, p.LengthM, p.Quantity))
	return nil
}

func spec(p models.Production) string {
	return fmt.Sprintf("%smm x %gcm x %gm", p.Thickness, p.WidthCm, p.LengthM)
}

// sevkiyata bağlanmış parti değiştirilemez
func ensureNotShipped(p models.Production) error {
	var count int64
	if err := database.DB.Model(&models.Shipment{}).
		Where("production_batch_code = ?", p.BatchCode).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat kontrolü yapılamadı")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "Bu üretim partisine bağlı sevkiyat var, değiştirilemez")
	}
	return nil
}

// GET /api/production?from=...&to=...&machine=...
func ListProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.Production{}))
		if err != nil {
			return err
		}
		if machine := c.Query("machine"); machine != "" {
			dbq = dbq.Where("machine = ?", machine)
		}

		var rows []models.Production
		if err := dbq.Order("date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim kayıtları listelenemedi")
		}
		return c.JSON(rows)
	}
}

// POST /api/production
func CreateProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductionRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		p := models.Production{BatchCode: uuid.NewString()}
		if err := body.apply(&p); err != nil {
			return err
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim kaydedilemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityProduction,
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Üretim eklendi: %s - %d adet", spec(p), p.Quantity),
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/production/:id
func UpdateProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var p models.Production
		if err := database.DB.First(&p, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Üretim kaydı bulunamadı")
		}
		if err := ensureNotShipped(p); err != nil {
			return err
		}

		var body ProductionRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		before := p
		if err := body.apply(&p); err != nil {
			return err
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim güncellenemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityProduction,
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Üretim güncellendi: %s", spec(p)),
			Before:      before,
			After:       p,
		})

		return c.JSON(p)
	}
}

// DELETE /api/production/:id
func DeleteProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var p models.Production
		if err := database.DB.First(&p, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Üretim kaydı bulunamadı")
		}
		if err := ensureNotShipped(p); err != nil {
			return err
		}

		if err := database.DB.Delete(&models.Production{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityProduction,
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Üretim silindi: %s - %d adet", spec(p), p.Quantity),
			Before:      p,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
