package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sar-ambalaj-backend/internal/auth"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/logger"
	"sar-ambalaj-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Entity tipleri
const (
	EntityProduction       = "production"
	EntityCutProduct       = "cut_product"
	EntityShipment         = "shipment"
	EntityMaterialPurchase = "material_purchase"
	EntityDailyConsumption = "daily_consumption"
	EntityExchangeRate     = "exchange_rate"
	EntityCostAnalysis     = "cost_analysis"
	EntityUser             = "user"
)

var ErrNotUndoable = errors.New("bu işlem türü geri alınamaz")
var ErrAlreadyUndone = errors.New("bu işlem zaten geri alınmış")
var ErrShippedBatch = errors.New("bu üretim partisine bağlı sevkiyat var, işlem geri alınamaz")
var ErrMissingBatch = errors.New("sevkiyatın bağlı olduğu üretim partisi artık yok, işlem geri alınamaz")

// undoGuard geri alma işlemini veto edebilir. restored, update/delete geri
// alınırken yazılacak kayıttır; create için nil gelir.
type undoGuard func(tx *gorm.DB, action models.AuditAction, entityID uint, restored any) error

var undoGuards = map[string]undoGuard{
	EntityProduction: guardProduction,
	EntityShipment:   guardShipment,
}

// Sevkiyata bağlanmış parti silinemez ve ölçüleri değiştirilemez.
func guardProduction(tx *gorm.DB, action models.AuditAction, entityID uint, _ any) error {
	if action == models.AuditActionDelete {
		return nil
	}
	var p models.Production
	if err := tx.Select("id", "batch_code").First(&p, entityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("üretim kaydı okunamadı: %w", err)
	}
	var count int64
	if err := tx.Model(&models.Shipment{}).Where("production_batch_code = ?", p.BatchCode).Count(&count).Error; err != nil {
		return fmt.Errorf("sevkiyat kontrolü yapılamadı: %w", err)
	}
	if count > 0 {
		return ErrShippedBatch
	}
	return nil
}

// Geri yüklenen sevkiyatın batch kodu hâlâ var olan bir partiyi göstermeli.
func guardShipment(tx *gorm.DB, _ models.AuditAction, _ uint, restored any) error {
	s, ok := restored.(*models.Shipment)
	if !ok || s.ProductionBatchCode == nil || *s.ProductionBatchCode == "" {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Production{}).Where("batch_code = ?", *s.ProductionBatchCode).Count(&count).Error; err != nil {
		return fmt.Errorf("üretim partisi kontrol edilemedi: %w", err)
	}
	if count == 0 {
		return ErrMissingBatch
	}
	return nil
}

// undoable: geri alınabilen entity tipleri ve boş model üreticileri.
// Kullanıcı kayıtları loglanır ama geri alınamaz.
var undoable = map[string]func() any{
	EntityProduction:       func() any { return &models.Production{} },
	EntityCutProduct:       func() any { return &models.CutProduct{} },
	EntityShipment:         func() any { return &models.Shipment{} },
	EntityMaterialPurchase: func() any { return &models.MaterialPurchase{} },
	EntityDailyConsumption: func() any { return &models.DailyConsumption{} },
	EntityExchangeRate:     func() any { return &models.ExchangeRate{} },
	EntityCostAnalysis:     func() any { return &models.CostAnalysis{} },
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func WriteLog(opts LogOptions) error {
	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := database.DB.Create(&log).Error; err != nil {
		logger.LogError("audit", "WriteLog", "audit log kaydedilemedi", opts.EntityType, err)
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

// UndoLog bir audit log'u geri alır ve undo kaydı oluşturur.
func UndoLog(logID uint, userID uint, userName string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var log models.AuditLog
		if err := tx.First(&log, "id = ?", logID).Error; err != nil {
			return fmt.Errorf("log bulunamadı: %w", err)
		}
		if log.IsUndone {
			return ErrAlreadyUndone
		}

		newModel, ok := undoable[log.EntityType]
		if !ok {
			return ErrNotUndoable
		}

		var restored any
		switch log.Action {
		case models.AuditActionCreate:
		case models.AuditActionUpdate, models.AuditActionDelete:
			m, err := decode(newModel, log.BeforeData)
			if err != nil {
				return err
			}
			restored = m
		default:
			return ErrNotUndoable
		}

		if guard, ok := undoGuards[log.EntityType]; ok {
			if err := guard(tx, log.Action, log.EntityID, restored); err != nil {
				return err
			}
		}

		switch log.Action {
		case models.AuditActionCreate:
			if err := tx.Delete(newModel(), "id = ?", log.EntityID).Error; err != nil {
				return fmt.Errorf("kayıt silinemedi: %w", err)
			}
		case models.AuditActionUpdate:
			if err := tx.Save(restored).Error; err != nil {
				return fmt.Errorf("kayıt geri yüklenemedi: %w", err)
			}
		case models.AuditActionDelete:
			// Orijinal ID korunur
			if err := tx.Create(restored).Error; err != nil {
				return fmt.Errorf("kayıt geri oluşturulamadı: %w", err)
			}
		}

		now := time.Now()
		log.IsUndone = true
		log.UndoneBy = &userID
		log.UndoneAt = &now
		if err := tx.Save(&log).Error; err != nil {
			return fmt.Errorf("log güncellenemedi: %w", err)
		}

		undoLog := models.AuditLog{
			UserID:      userID,
			UserName:    userName,
			EntityType:  log.EntityType,
			EntityID:    log.EntityID,
			Action:      models.AuditActionUndo,
			Description: fmt.Sprintf("Geri alındı: %s", log.Description),
			BeforeData:  log.AfterData,
			AfterData:   log.BeforeData,
			Undone:      true,
		}
		if err := tx.Create(&undoLog).Error; err != nil {
			return fmt.Errorf("undo log kaydedilemedi: %w", err)
		}
		return nil
	})
}

func decode(newModel func() any, data string) (any, error) {
	if data == "" || data == "null" {
		return nil, fmt.Errorf("geri alınacak veri yok")
	}
	m := newModel()
	if err := json.Unmarshal([]byte(data), m); err != nil {
		return nil, fmt.Errorf("log verisi çözümlenemedi: %w", err)
	}
	return m, nil
}

// Record oturumdaki kullanıcı adına log yazar. Log hatası isteği bozmaz.
func Record(c *fiber.Ctx, opts LogOptions) {
	userID, userName, err := auth.CurrentUser(c)
	if err != nil {
		logger.LogError("audit", "Record", "kullanıcı bilgisi alınamadı", opts.EntityType, err)
		return
	}
	opts.UserID = userID
	opts.UserName = userName
	_ = WriteLog(opts)
}
