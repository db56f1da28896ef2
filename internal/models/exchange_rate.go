package models

import "time"

// ExchangeRate: Tek satırlık güncel kur bilgisi (1 birim döviz = X TL)
type ExchangeRate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	USD       float64   `gorm:"not null" json:"usd"`
	EUR       float64   `gorm:"not null" json:"eur"`
	UpdatedBy string    `gorm:"size:100" json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Kayıt yokken kullanılan varsayılan kurlar
const (
	DefaultUSDRate = 42.00
	DefaultEURRate = 48.00
)
