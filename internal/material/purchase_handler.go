package material

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

// TotalPrice istemciden alınmaz. ExchangeRate boşsa dövizde güncel kur,
// TL'de 1 kullanılır.
type PurchaseRequest struct {
	Date         string              `json:"date" validate:"required"`
	Material     models.Material     `json:"material" validate:"required"`
	Quantity     float64             `json:"quantity" validate:"gt=0"`
	Unit         models.MaterialUnit `json:"unit" validate:"omitempty,oneof=kg adet"`
	UnitPrice    float64             `json:"unit_price" validate:"gte=0"`
	Currency     string              `json:"currency"`
	ExchangeRate float64             `json:"exchange_rate" validate:"gte=0"`
	Supplier     string              `json:"supplier" validate:"max=150"`
	InvoiceNo    string              `json:"invoice_no" validate:"max=50"`
}

func (r PurchaseRequest) apply(p *models.MaterialPurchase) error {
	d, err := validation.Date(r.Date)
	if err != nil {
		return err
	}
	if !r.Material.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hammadde")
	}

	currency := models.ParseCurrency(r.Currency)
	switch currency {
	case models.CurrencyTRY, models.CurrencyUSD, models.CurrencyEUR:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Para birimi TRY, USD veya EUR olmalı")
	}

	rate := r.ExchangeRate
	if currency == models.CurrencyTRY {
		rate = 1
	} else if rate == 0 {
		snapshot, err := CurrentExchangeRate()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kur bilgisi alınamadı")
		}
		rate = costing.RatesFrom(snapshot).Multiplier(currency)
	}

	unit := r.Unit
	if unit == "" {
		unit = models.UnitKilogram
		if r.Material.IsSpool() {
			unit = models.UnitPiece
		}
	}

	p.Date = d
	p.Material = r.Material
	p.EntryType = models.EntryTypeIn
	p.Quantity = r.Quantity
	p.Unit = unit
	p.UnitPrice = r.UnitPrice
	p.Currency = currency
	p.ExchangeRate = rate
	p.TotalPrice = costing.PurchaseTotal(r.Quantity, r.UnitPrice, rate)
	p.Supplier = strings.TrimSpace(r.Supplier)
	p.InvoiceNo = strings.TrimSpace(r.InvoiceNo)
	return nil
}

// GET /api/materials?from=...&to=...&material=PETKIM
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.MaterialPurchase{}))
		if err != nil {
			return err
		}
		if m := c.Query("material"); m != "" {
			dbq = dbq.Where("material = ?", m)
		}

		var rows []models.MaterialPurchase
		if err := dbq.Order("date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde girişleri listelenemedi")
		}
		return c.JSON(rows)
	}
}

// LoadCurrentPrices tüm girişlerden güncel fiyat listesini çıkarır.
func LoadCurrentPrices() (costing.PriceList, error) {
	var rows []models.MaterialPurchase
	if err := database.DB.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("hammadde girişleri okunamadı: %w", err)
	}
	return costing.CurrentPrices(rows), nil
}

// GET /api/materials/current-prices
func CurrentPricesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		prices, err := LoadCurrentPrices()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Güncel fiyatlar alınamadı")
		}
		snapshot, err := CurrentExchangeRate()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kur bilgisi alınamadı")
		}
		rates := costing.RatesFrom(snapshot)

		type item struct {
			Material     models.Material `json:"material"`
			UnitPrice    float64         `json:"unit_price"`
			Currency     models.Currency `json:"currency"`
			UnitPriceTRY float64         `json:"unit_price_try"`
		}
		resp := make([]item, 0, len(prices))
		for _, m := range models.AllMaterials {
			p, ok := prices[m]
			if !ok {
				continue
			}
			resp = append(resp, item{
				Material:     m,
				UnitPrice:    p.UnitPrice,
				Currency:     p.Currency,
				UnitPriceTRY: costing.Round2(prices.InBase(m, rates)),
			})
		}
		return c.JSON(fiber.Map{
			"prices": resp,
			"rates":  rates,
		})
	}
}

// POST /api/materials
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PurchaseRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		var p models.MaterialPurchase
		if err := body.apply(&p); err != nil {
			return err
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde girişi kaydedilemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityMaterialPurchase,
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Hammadde girişi: %s %.2f %s - %.2f TL", p.Material, p.Quantity, p.Unit, p.TotalPrice),
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/materials/:id
func UpdatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var p models.MaterialPurchase
		if err := database.DB.First(&p, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hammadde girişi bulunamadı")
		}

		var body PurchaseRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		before := p
		if err := body.apply(&p); err != nil {
			return err
		}
		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde girişi güncellenemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityMaterialPurchase,
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Hammadde girişi güncellendi: %s", p.Material),
			Before:      before,
			After:       p,
		})

		return c.JSON(p)
	}
}

// DELETE /api/materials/:id
func DeletePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var p models.MaterialPurchase
		if err := database.DB.First(&p, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hammadde girişi bulunamadı")
		}
		if err := database.DB.Delete(&models.MaterialPurchase{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde girişi silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityMaterialPurchase,
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Hammadde girişi silindi: %s %.2f %s", p.Material, p.Quantity, p.Unit),
			Before:      p,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
