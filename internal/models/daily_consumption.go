package models

import "time"

// DailyConsumption: Makine bazında günlük hammadde tüketimi (kg)
type DailyConsumption struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Date              time.Time `gorm:"index;not null" json:"date"`
	Machine           string    `gorm:"size:50;not null" json:"machine"`
	TotalProductionM2 float64   `json:"total_production_m2"`
	Petkim            float64   `json:"petkim"`
	Estol             float64   `json:"estol"`
	Talk              float64   `json:"talk"`
	Gaz               float64   `json:"gaz"`
	Sari              float64   `json:"sari"`
	Fire              float64   `json:"fire"` // fire (kg)
	Notes             string    `gorm:"size:255" json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
