package shipment

import (
	"fmt"
	"strings"

	"sar-ambalaj-backend/internal/audit"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/models"
	"sar-ambalaj-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ShipmentRequest struct {
	Date                string              `json:"date" validate:"required"`
	Customer            string              `json:"customer" validate:"required,max=150"`
	Type                models.ShipmentType `json:"type" validate:"required,oneof=Normal Kesim"`
	SizeSpec            string              `json:"size_spec" validate:"max=100"`
	M2                  float64             `json:"m2" validate:"gte=0"`
	Quantity            int                 `json:"quantity" validate:"gte=1"`
	Color               string              `json:"color" validate:"max=50"`
	WaybillNo           string              `json:"waybill_no" validate:"max=50"`
	VehiclePlate        string              `json:"vehicle_plate" validate:"max=20"`
	Driver              string              `json:"driver" validate:"max=100"`
	ExitTime            string              `json:"exit_time" validate:"omitempty,datetime=15:04"`
	ProductionBatchCode *string             `json:"production_batch_code" validate:"omitempty,max=36"`
}

func (r ShipmentRequest) apply(s *models.Shipment) error {
	d, err := validation.Date(r.Date)
	if err != nil {
		return err
	}

	s.Date = d
	s.Customer = strings.TrimSpace(r.Customer)
	s.Type = r.Type
	s.SizeSpec = strings.TrimSpace(r.SizeSpec)
	s.M2 = r.M2
	s.Quantity = r.Quantity
	s.Color = strings.TrimSpace(r.Color)
	s.WaybillNo = strings.TrimSpace(r.WaybillNo)
	s.VehiclePlate = strings.ToUpper(strings.TrimSpace(r.VehiclePlate))
	s.Driver = strings.TrimSpace(r.Driver)
	s.ExitTime = r.ExitTime
	s.ProductionBatchCode = nil

	if r.ProductionBatchCode == nil {
		return nil
	}
	code := strings.TrimSpace(*r.ProductionBatchCode)
	if code == "" {
		return nil
	}
	if r.Type != models.ShipmentNormal {
		return fiber.NewError(fiber.StatusBadRequest, "Üretim partisi sadece Normal sevkiyata bağlanabilir")
	}

	var count int64
	if err := database.DB.Model(&models.Production{}).Where("batch_code = ?", code).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Üretim partisi kontrol edilemedi")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Üretim partisi bulunamadı")
	}
	s.ProductionBatchCode = &code
	return nil
}

// GET /api/shipments?from=...&to=...&type=Normal&customer=...
func ListShipmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq, err := validation.DateRange(c, database.DB.Model(&models.Shipment{}))
		if err != nil {
			return err
		}
		if t := c.Query("type"); t != "" {
			dbq = dbq.Where("type = ?", t)
		}
		if customer := c.Query("customer"); customer != "" {
			dbq = dbq.Where("customer = ?", customer)
		}

		var rows []models.Shipment
		if err := dbq.Order("date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyatlar listelenemedi")
		}
		return c.JSON(rows)
	}
}

// POST /api/shipments
func CreateShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ShipmentRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		var s models.Shipment
		if err := body.apply(&s); err != nil {
			return err
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat kaydedilemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityShipment,
			EntityID:    s.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sevkiyat eklendi: %s - %s %d adet", s.Customer, s.SizeSpec, s.Quantity),
			After:       s,
		})

		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// PUT /api/shipments/:id
func UpdateShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var s models.Shipment
		if err := database.DB.First(&s, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevkiyat bulunamadı")
		}

		var body ShipmentRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		before := s
		if err := body.apply(&s); err != nil {
			return err
		}
		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat güncellenemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityShipment,
			EntityID:    s.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Sevkiyat güncellendi: %s - %s", s.Customer, s.SizeSpec),
			Before:      before,
			After:       s,
		})

		return c.JSON(s)
	}
}

// DELETE /api/shipments/:id
func DeleteShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var s models.Shipment
		if err := database.DB.First(&s, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevkiyat bulunamadı")
		}
		if err := database.DB.Delete(&models.Shipment{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityShipment,
			EntityID:    s.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Sevkiyat silindi: %s - %s %d adet", s.Customer, s.SizeSpec, s.Quantity),
			Before:      s,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
