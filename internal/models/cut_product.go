package models

import "time"

// CutProduct: Rulodan kesilen ebat ürün. Kaynak rulo ile bağı sadece
// ölçü metni üzerinden kurulur.
type CutProduct struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	Date                   time.Time `gorm:"index;not null" json:"date"`
	SourceSpec             string    `gorm:"size:100" json:"source_spec"` // ör: "2mm x 100cm x 300m"
	CutSpec                string    `gorm:"size:100;not null" json:"cut_spec"`
	CutWidthCm             float64   `json:"cut_width_cm"`
	CutLengthCm            float64   `json:"cut_length_cm"` // ebatta boy santimetre
	PieceM2                float64   `json:"piece_m2"`
	TotalM2                float64   `json:"total_m2"`
	Quantity               int       `gorm:"not null" json:"quantity"`
	SourceQuantityConsumed float64   `json:"source_quantity_consumed"`
	Color                  string    `gorm:"size:50" json:"color"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
