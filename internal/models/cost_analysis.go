package models

import "time"

// CostAnalysis: Maliyet hesaplayıcıdan kaydedilen sonuç
type CostAnalysis struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Date         time.Time `gorm:"index;not null" json:"date"`
	Product      string    `gorm:"size:150;not null" json:"product"` // ör: "2mm x 100cm x 300m"
	Quantity     int       `gorm:"not null" json:"quantity"`
	TotalM2      float64   `json:"total_m2"`
	MaterialCost float64   `json:"material_cost"`
	SpoolCost    float64   `json:"spool_cost"`
	BaseCost     float64   `json:"base_cost"`
	OverheadPct  float64   `json:"overhead_pct"`
	ProfitPct    float64   `json:"profit_pct"`
	FinalCost    float64   `json:"final_cost"`
	UnitCost     float64   `json:"unit_cost"`
	M2Cost       float64   `json:"m2_cost"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
