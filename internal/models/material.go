package models

import (
	"strings"
	"time"
)

type Material string

const (
	MaterialGaz       Material = "GAZ"
	MaterialPetkim    Material = "PETKIM"
	MaterialEstol     Material = "ESTOL"
	MaterialTalk      Material = "TALK"
	MaterialMasura100 Material = "MASURA 100"
	MaterialMasura120 Material = "MASURA 120"
	MaterialMasura150 Material = "MASURA 150"
	MaterialMasura200 Material = "MASURA 200"
	MaterialSari      Material = "SARI"
)

var AllMaterials = []Material{
	MaterialGaz,
	MaterialPetkim,
	MaterialEstol,
	MaterialTalk,
	MaterialMasura100,
	MaterialMasura120,
	MaterialMasura150,
	MaterialMasura200,
	MaterialSari,
}

func (m Material) Valid() bool {
	for _, v := range AllMaterials {
		if v == m {
			return true
		}
	}
	return false
}

// SpoolType: masura (rulo göbeği) tipi
type SpoolType string

const (
	Spool100 SpoolType = "MASURA 100"
	Spool120 SpoolType = "MASURA 120"
	Spool150 SpoolType = "MASURA 150"
	Spool200 SpoolType = "MASURA 200"
)

// ParseSpoolType serbest metinden ("Masura 100", "masura100") masura tipini çıkarır.
// Tanınmayan değerler için boş döner.
func ParseSpoolType(s string) SpoolType {
	n := strings.ReplaceAll(strings.ToLower(s), " ", "")
	switch {
	case strings.Contains(n, "100"):
		return Spool100
	case strings.Contains(n, "120"):
		return Spool120
	case strings.Contains(n, "150"):
		return Spool150
	case strings.Contains(n, "200"):
		return Spool200
	}
	return ""
}

func (m Material) IsSpool() bool {
	return strings.HasPrefix(string(m), "MASURA")
}

func (s SpoolType) Material() Material {
	return Material(s)
}

type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// ParseCurrency "TL" yazımını da TRY olarak kabul eder.
func ParseCurrency(s string) Currency {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "TL", "TRY":
		return CurrencyTRY
	case "USD":
		return CurrencyUSD
	case "EUR":
		return CurrencyEUR
	}
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

type MaterialUnit string

const (
	UnitKilogram MaterialUnit = "kg"
	UnitPiece    MaterialUnit = "adet"
)

const EntryTypeIn = "Giriş"

// MaterialPurchase: Hammadde girişi. TotalPrice = Quantity × UnitPrice × ExchangeRate
type MaterialPurchase struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Date         time.Time    `gorm:"index;not null" json:"date"`
	Material     Material     `gorm:"size:30;index;not null" json:"material"`
	EntryType    string       `gorm:"size:20;not null" json:"entry_type"`
	Quantity     float64      `gorm:"not null" json:"quantity"`
	Unit         MaterialUnit `gorm:"size:10;not null" json:"unit"`
	UnitPrice    float64      `gorm:"not null" json:"unit_price"`
	Currency     Currency     `gorm:"size:3;not null" json:"currency"`
	ExchangeRate float64      `gorm:"not null" json:"exchange_rate"`
	TotalPrice   float64      `gorm:"not null" json:"total_price"` // TL
	Supplier     string       `gorm:"size:150" json:"supplier"`
	InvoiceNo    string       `gorm:"size:50" json:"invoice_no"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
