package material

import (
	"errors"
	"fmt"

	"sar-ambalaj-backend/internal/audit"
	"sar-ambalaj-backend/internal/auth"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/models"
	"sar-ambalaj-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CurrentExchangeRate kayıtlı kuru döner. Kayıt yoksa varsayılan kurlar.
func CurrentExchangeRate() (models.ExchangeRate, error) {
	var r models.ExchangeRate
	err := database.DB.Order("id asc").First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ExchangeRate{USD: models.DefaultUSDRate, EUR: models.DefaultEURRate}, nil
	}
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("kur okunamadı: %w", err)
	}
	return r, nil
}

type ExchangeRateRequest struct {
	USD float64 `json:"usd" validate:"gt=0"`
	EUR float64 `json:"eur" validate:"gt=0"`
}

// GET /api/exchange-rates
func GetExchangeRatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := CurrentExchangeRate()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kur bilgisi alınamadı")
		}
		return c.JSON(r)
	}
}

// PUT /api/exchange-rates
func UpdateExchangeRatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExchangeRateRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		r, err := CurrentExchangeRate()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kur bilgisi alınamadı")
		}

		before := r
		_, userName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		r.USD = body.USD
		r.EUR = body.EUR
		r.UpdatedBy = userName

		action := models.AuditActionUpdate
		if r.ID == 0 {
			action = models.AuditActionCreate
		}
		if err := database.DB.Save(&r).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kur güncellenemedi")
		}

		opts := audit.LogOptions{
			EntityType:  audit.EntityExchangeRate,
			EntityID:    r.ID,
			Action:      action,
			Description: fmt.Sprintf("Kur güncellendi: USD %.4f, EUR %.4f", r.USD, r.EUR),
			After:       r,
		}
		if action == models.AuditActionUpdate {
			opts.Before = before
		}
		audit.Record(c, opts)

		return c.JSON(r)
	}
}
