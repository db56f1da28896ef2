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

type CutProductRequest struct {
	Date                   string  `json:"date" validate:"required"`
	SourceSpec             string  `json:"source_spec" validate:"max=100"`
	CutSpec                string  `json:"cut_spec" validate:"max=100"`
	CutWidthCm             float64 `json:"cut_width_cm" validate:"gt=0"`
	CutLengthCm            float64 `json:"cut_length_cm" validate:"gt=0"`
	Quantity               int     `json:"quantity" validate:"gte=1"`
	SourceQuantityConsumed float64 `json:"source_quantity_consumed" validate:"gte=0"`
	Color                  string  `json:"color" validate:"max=50"`
}

func (r CutProductRequest) apply(cp *models.CutProduct) error {
	d, err := validation.Date(r.Date)
	if err != nil {
		return err
	}

	cp.Date = d
	cp.SourceSpec = strings.TrimSpace(r.SourceSpec)
	cp.CutWidthCm = r.CutWidthCm
	cp.CutLengthCm = r.CutLengthCm
	cp.CutSpec = strings.TrimSpace(r.CutSpec)
	if cp.CutSpec == "" {
		cp.CutSpec = fmt.Sprintf("%gx%g", r.CutWidthCm, r.CutLengthCm)
	}
	cp.Quantity = r.Quantity
	cp.SourceQuantityConsumed = r.SourceQuantityConsumed
	cp.Color = strings.TrimSpace(r.Color)

	cp.PieceM2 = costing.Round2(costing.PieceArea(cp.CutWidthCm, cp.CutLengthCm))
	cp.TotalM2 = costing.Round2(costing.PieceBatchArea(cp.CutWidthCm, cp.CutLengthCm, cp.Quantity))
	return nil
}

// GET /api/cut-products?from=...&to=...
func ListCutProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.CutProduct{}))
		if err != nil {
			return err
		}

		var rows []models.CutProduct
		if err := dbq.Order("date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ebat kayıtları listelenemedi")
		}
		return c.JSON(rows)
	}
}

// POST /api/cut-products
func CreateCutProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CutProductRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		var cp models.CutProduct
		if err := body.apply(&cp); err != nil {
			return err
		}

		if err := database.DB.Create(&cp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ebat kaydedilemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityCutProduct,
			EntityID:    cp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ebat eklendi: %s - %d adet", cp.CutSpec, cp.Quantity),
			After:       cp,
		})

		return c.Status(fiber.StatusCreated).JSON(cp)
	}
}

// PUT /api/cut-products/:id
func UpdateCutProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var cp models.CutProduct
		if err := database.DB.First(&cp, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ebat kaydı bulunamadı")
		}

		var body CutProductRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		before := cp
		if err := body.apply(&cp); err != nil {
			return err
		}
		if err := database.DB.Save(&cp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ebat güncellenemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityCutProduct,
			EntityID:    cp.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ebat güncellendi: %s", cp.CutSpec),
			Before:      before,
			After:       cp,
		})

		return c.JSON(cp)
	}
}

// DELETE /api/cut-products/:id
func DeleteCutProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var cp models.CutProduct
		if err := database.DB.First(&cp, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ebat kaydı bulunamadı")
		}
		if err := database.DB.Delete(&models.CutProduct{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ebat silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityCutProduct,
			EntityID:    cp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Ebat silindi: %s - %d adet", cp.CutSpec, cp.Quantity),
			Before:      cp,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
