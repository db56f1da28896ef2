package models

import "time"

type ColorCategory string

const (
	ColorNatural ColorCategory = "Doğal"
	ColorColored ColorCategory = "Renkli"
)

// Production: Rulo üretim kaydı. M2 her zaman en(cm) × boy(m) × adet / 10.000
// olarak sunucuda hesaplanır.
type Production struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	BatchCode     string        `gorm:"size:36;uniqueIndex;not null" json:"batch_code"`
	Date          time.Time     `gorm:"index;not null" json:"date"`
	Machine       string        `gorm:"size:50;not null" json:"machine"`
	Thickness     string        `gorm:"size:20;not null" json:"thickness"` // mm
	WidthCm       float64       `gorm:"not null" json:"width_cm"`
	LengthM       float64       `gorm:"not null" json:"length_m"`
	M2            float64       `gorm:"not null" json:"m2"`
	Quantity      int           `gorm:"not null" json:"quantity"`
	SpoolType     SpoolType     `gorm:"size:20" json:"spool_type"`
	Color         string        `gorm:"size:50" json:"color"`
	ColorCategory ColorCategory `gorm:"size:20" json:"color_category"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
