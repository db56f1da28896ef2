package database

import (
	"fmt"

	"sar-ambalaj-backend/internal/config"
	"sar-ambalaj-backend/internal/logger"
	"sar-ambalaj-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	if err := Connect(postgres.Open(cfg.DatabaseDSN)); err != nil {
		logger.Log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}
	logger.Log.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Connect verilen dialector ile bağlanır ve tabloları migrate eder.
// Testler sqlite dialector ile çağırır.
func Connect(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("bağlantı açılamadı: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Production{},
		&models.CutProduct{},
		&models.Shipment{},
		&models.MaterialPurchase{},
		&models.DailyConsumption{},
		&models.ExchangeRate{},
		&models.CostAnalysis{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}

	DB = db
	return nil
}
