package models

import "time"

type ShipmentType string

const (
	ShipmentNormal ShipmentType = "Normal"
	ShipmentCut    ShipmentType = "Kesim"
)

// Shipment: Fabrikadan çıkan sevkiyat. ProductionBatchCode doluysa sevkiyat
// doğrudan o üretim partisine bağlanır, boşsa stok eşleşmesi ölçü metni ve
// renge göre yapılır.
type Shipment struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	Date                time.Time    `gorm:"index;not null" json:"date"`
	Customer            string       `gorm:"size:150;not null" json:"customer"`
	Type                ShipmentType `gorm:"size:20;not null" json:"type"`
	SizeSpec            string       `gorm:"size:100" json:"size_spec"`
	M2                  float64      `json:"m2"`
	Quantity            int          `gorm:"not null" json:"quantity"`
	Color               string       `gorm:"size:50" json:"color"`
	WaybillNo           string       `gorm:"size:50" json:"waybill_no"`
	VehiclePlate        string       `gorm:"size:20" json:"vehicle_plate"`
	Driver              string       `gorm:"size:100" json:"driver"`
	ExitTime            string       `gorm:"size:10" json:"exit_time"` // "HH:MM"
	ProductionBatchCode *string      `gorm:"size:36;index" json:"production_batch_code"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}
