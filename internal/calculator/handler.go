package calculator

import (
	"fmt"
	"strings"
	"time"

	"sar-ambalaj-backend/internal/audit"
	"sar-ambalaj-backend/internal/config"
	"sar-ambalaj-backend/internal/costing"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/logger"
	"sar-ambalaj-backend/internal/material"
	"sar-ambalaj-backend/internal/models"
	"sar-ambalaj-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Oranlar gönderilmezse config'teki varsayılanlar kullanılır.
type EstimateRequest struct {
	WidthCm        float64            `json:"width_cm" validate:"gte=0"`
	LengthM        float64            `json:"length_m" validate:"gte=0"`
	Quantity       int                `json:"quantity" validate:"gte=0"`
	PrimaryKg      float64            `json:"primary_kg" validate:"gte=0"`
	GramsPerM2     float64            `json:"grams_per_m2" validate:"gte=0"`
	SpoolType      string             `json:"spool_type"`
	SpoolUnitPrice float64            `json:"spool_unit_price" validate:"gte=0"`
	ManualKg       map[string]float64 `json:"manual_kg"`
	OverheadPct    *float64           `json:"overhead_pct" validate:"omitempty,gte=0"`
	ProfitPct      *float64           `json:"profit_pct" validate:"omitempty,gte=0"`
}

type RecutRequest struct {
	ParentBaseCost    float64  `json:"parent_base_cost" validate:"gte=0"`
	ParentTotalAreaM2 float64  `json:"parent_total_area_m2" validate:"gte=0"`
	PieceWidthCm      float64  `json:"piece_width_cm" validate:"gte=0"`
	PieceLengthCm     float64  `json:"piece_length_cm" validate:"gte=0"`
	PieceAreaM2       float64  `json:"piece_area_m2" validate:"gte=0"`
	OverheadPct       *float64 `json:"overhead_pct" validate:"omitempty,gte=0"`
	ProfitPct         *float64 `json:"profit_pct" validate:"omitempty,gte=0"`
}

func pct(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func manualKg(in map[string]float64) (map[models.Material]float64, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[models.Material]float64, len(in))
	for k, v := range in {
		m := models.Material(strings.ToUpper(strings.TrimSpace(k)))
		if !m.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Geçersiz hammadde: %s", k))
		}
		out[m] = v
	}
	return out, nil
}

// estimate güncel fiyat ve kurlarla motoru çalıştırır.
func estimate(cfg *config.Config, r EstimateRequest) (costing.CostBreakdown, error) {
	manual, err := manualKg(r.ManualKg)
	if err != nil {
		return costing.CostBreakdown{}, err
	}

	prices, err := material.LoadCurrentPrices()
	if err != nil {
		logger.LogError("calculator", "estimate", "fiyat listesi", nil, err)
		return costing.CostBreakdown{}, fiber.NewError(fiber.StatusInternalServerError, "Güncel fiyatlar alınamadı")
	}
	snapshot, err := material.CurrentExchangeRate()
	if err != nil {
		logger.LogError("calculator", "estimate", "kur", nil, err)
		return costing.CostBreakdown{}, fiber.NewError(fiber.StatusInternalServerError, "Kur bilgisi alınamadı")
	}

	return costing.Estimate(costing.EstimateInput{
		Dimensions: costing.Dimensions{
			WidthCm:  r.WidthCm,
			LengthM:  r.LengthM,
			Quantity: r.Quantity,
		},
		PrimaryKg:      r.PrimaryKg,
		GramsPerM2:     r.GramsPerM2,
		ManualKg:       manual,
		Spool:          models.ParseSpoolType(r.SpoolType),
		SpoolUnitPrice: r.SpoolUnitPrice,
		Prices:         prices,
		Rates:          costing.RatesFrom(snapshot),
		OverheadPct:    pct(r.OverheadPct, cfg.DefaultOverheadPct),
		ProfitPct:      pct(r.ProfitPct, cfg.DefaultProfitPct),
	}), nil
}

// POST /api/cost-calculator
func EstimateHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EstimateRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		out, err := estimate(cfg, body)
		if err != nil {
			return err
		}
		return c.JSON(out)
	}
}

// POST /api/cost-calculator/recut
func RecutHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecutRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		return c.JSON(costing.Recut(costing.RecutInput{
			ParentBaseCost:    body.ParentBaseCost,
			ParentTotalAreaM2: body.ParentTotalAreaM2,
			PieceWidthCm:      body.PieceWidthCm,
			PieceLengthCm:     body.PieceLengthCm,
			PieceAreaM2:       body.PieceAreaM2,
			OverheadPct:       pct(body.OverheadPct, cfg.DefaultOverheadPct),
			ProfitPct:         pct(body.ProfitPct, cfg.DefaultProfitPct),
		}))
	}
}

// -------------------------
// Kayıtlı maliyet analizleri
// -------------------------

type SaveAnalysisRequest struct {
	EstimateRequest
	Date    string `json:"date"` // boşsa bugün
	Product string `json:"product" validate:"max=150"`
}

// GET /api/cost-analysis?from=...&to=...
func ListAnalysesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.CostAnalysis{}))
		if err != nil {
			return err
		}

		var rows []models.CostAnalysis
		if err := dbq.Order("date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyet analizleri listelenemedi")
		}
		return c.JSON(rows)
	}
}

// POST /api/cost-analysis
// Sonuç sunucuda yeniden hesaplanır, istemcinin gönderdiği maliyetler kullanılmaz.
func SaveAnalysisHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveAnalysisRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		now := time.Now()
		date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if body.Date != "" {
			d, err := validation.Date(body.Date)
			if err != nil {
				return err
			}
			date = d
		}

		out, err := estimate(cfg, body.EstimateRequest)
		if err != nil {
			return err
		}

		product := strings.TrimSpace(body.Product)
		if product == "" {
			product = fmt.Sprintf("%gcm x %gm", body.WidthCm, body.LengthM)
		}

		a := models.CostAnalysis{
			Date:         date,
			Product:      product,
			Quantity:     body.Quantity,
			TotalM2:      costing.Round2(out.TotalAreaM2),
			MaterialCost: costing.Round2(out.MaterialCost),
			SpoolCost:    costing.Round2(out.SpoolCost),
			BaseCost:     costing.Round2(out.BaseCost),
			OverheadPct:  out.OverheadPct,
			ProfitPct:    out.ProfitPct,
			FinalCost:    costing.Round2(out.FinalCost),
			UnitCost:     costing.Round2(out.UnitCost),
			M2Cost:       costing.Round2(out.AreaCost),
		}
		if err := database.DB.Create(&a).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyet analizi kaydedilemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityCostAnalysis,
			EntityID:    a.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Maliyet analizi kaydedildi: %s - %.2f TL", a.Product, a.FinalCost),
			After:       a,
		})

		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// DELETE /api/cost-analysis/:id
func DeleteAnalysisHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var a models.CostAnalysis
		if err := database.DB.First(&a, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Maliyet analizi bulunamadı")
		}
		if err := database.DB.Delete(&models.CostAnalysis{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maliyet analizi silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityCostAnalysis,
			EntityID:    a.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Maliyet analizi silindi: %s", a.Product),
			Before:      a,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
