package costing

import (
	"math"

	"sar-ambalaj-backend/internal/models"
)

// Yardımcı hammaddelerin ana hammaddeye (PETKİM) oranı
const (
	EstolRatio = 0.03
	TalkRatio  = 0.015
	GazRatio   = 0.04
)

type Additives struct {
	EstolKg float64 `json:"estol_kg"`
	TalkKg  float64 `json:"talk_kg"`
	GazKg   float64 `json:"gaz_kg"`
}

func DeriveAdditives(primaryKg float64) Additives {
	p := NonNegative(primaryKg)
	return Additives{
		EstolKg: p * EstolRatio,
		TalkKg:  p * TalkRatio,
		GazKg:   p * GazRatio,
	}
}

// PrimaryKgFromGrams gramaj (g/m²) ve toplam alandan ana hammadde kg'ı
func PrimaryKgFromGrams(gramsPerM2, areaM2 float64) float64 {
	return NonNegative(gramsPerM2) * NonNegative(areaM2) / 1000
}

type Price struct {
	UnitPrice float64         `json:"unit_price"`
	Currency  models.Currency `json:"currency"`
}

type PriceList map[models.Material]Price

// InBase hammaddenin TL birim fiyatı. Listede yoksa 0.
func (p PriceList) InBase(m models.Material, r Rates) float64 {
	pr, ok := p[m]
	if !ok {
		return 0
	}
	return r.ToBase(NonNegative(pr.UnitPrice), pr.Currency)
}

type EstimateInput struct {
	Dimensions Dimensions

	// Ana hammadde doğrudan kg olarak ya da gramaj üzerinden verilir.
	// PrimaryKg > 0 ise gramaj dikkate alınmaz.
	PrimaryKg  float64
	GramsPerM2 float64

	// Elle girilen miktarlar oranla türetilen miktarların yerine geçer
	ManualKg map[models.Material]float64

	Spool          models.SpoolType
	SpoolUnitPrice float64 // > 0 ise fiyat listesi yerine kullanılır (TL)

	Prices PriceList
	Rates  Rates

	OverheadPct float64
	ProfitPct   float64
}

type MaterialLine struct {
	Material     models.Material `json:"material"`
	Kg           float64         `json:"kg"`
	UnitPriceTRY float64         `json:"unit_price_try"`
	Cost         float64         `json:"cost"`
}

type CostBreakdown struct {
	TotalAreaM2 float64 `json:"total_area_m2"`
	UnitAreaM2  float64 `json:"unit_area_m2"`

	PrimaryKg float64 `json:"primary_kg"`
	EstolKg   float64 `json:"estol_kg"`
	TalkKg    float64 `json:"talk_kg"`
	GazKg     float64 `json:"gaz_kg"`
	SariKg    float64 `json:"sari_kg"`

	Materials    []MaterialLine `json:"materials"`
	MaterialCost float64        `json:"material_cost"`

	SpoolType      models.SpoolType `json:"spool_type"`
	SpoolUnitPrice float64          `json:"spool_unit_price"`
	SpoolCost      float64          `json:"spool_cost"`

	BaseCost         float64 `json:"base_cost"`
	OverheadPct      float64 `json:"overhead_pct"`
	ProfitPct        float64 `json:"profit_pct"`
	CostWithOverhead float64 `json:"cost_with_overhead"`
	FinalCost        float64 `json:"final_cost"`
	UnitCost         float64 `json:"unit_cost"`
	AreaCost         float64 `json:"area_cost"`
}

// ApplyMarkup önce genel gider, sonra kâr oranını uygular.
func ApplyMarkup(baseCost, overheadPct, profitPct float64) (withOverhead, final float64) {
	withOverhead = finite(baseCost) * (1 + finite(overheadPct)/100)
	final = withOverhead * (1 + finite(profitPct)/100)
	return withOverhead, final
}

func UnitCost(finalCost float64, quantity int) float64 {
	return Div(finalCost, float64(max(quantity, 0)))
}

func AreaCost(finalCost, totalAreaM2 float64) float64 {
	return Div(finalCost, NonNegative(totalAreaM2))
}

func Estimate(in EstimateInput) CostBreakdown {
	out := CostBreakdown{
		TotalAreaM2: in.Dimensions.TotalArea(),
		UnitAreaM2:  in.Dimensions.UnitArea(),
		SpoolType:   in.Spool,
		OverheadPct: finite(in.OverheadPct),
		ProfitPct:   finite(in.ProfitPct),
	}

	primary := NonNegative(in.PrimaryKg)
	if primary == 0 {
		primary = PrimaryKgFromGrams(in.GramsPerM2, out.TotalAreaM2)
	}
	if v, ok := in.ManualKg[models.MaterialPetkim]; ok {
		primary = NonNegative(v)
	}

	add := DeriveAdditives(primary)
	out.PrimaryKg = primary
	out.EstolKg = manualOr(in.ManualKg, models.MaterialEstol, add.EstolKg)
	out.TalkKg = manualOr(in.ManualKg, models.MaterialTalk, add.TalkKg)
	out.GazKg = manualOr(in.ManualKg, models.MaterialGaz, add.GazKg)
	out.SariKg = manualOr(in.ManualKg, models.MaterialSari, 0)

	type usage struct {
		m  models.Material
		kg float64
	}
	quantities := []usage{
		{models.MaterialPetkim, out.PrimaryKg},
		{models.MaterialEstol, out.EstolKg},
		{models.MaterialTalk, out.TalkKg},
		{models.MaterialGaz, out.GazKg},
	}
	if out.SariKg > 0 {
		quantities = append(quantities, usage{models.MaterialSari, out.SariKg})
	}

	out.Materials = make([]MaterialLine, 0, len(quantities))
	for _, q := range quantities {
		price := in.Prices.InBase(q.m, in.Rates)
		line := MaterialLine{
			Material:     q.m,
			Kg:           q.kg,
			UnitPriceTRY: price,
			Cost:         q.kg * price,
		}
		out.Materials = append(out.Materials, line)
		out.MaterialCost += line.Cost
	}

	out.SpoolUnitPrice = NonNegative(in.SpoolUnitPrice)
	if out.SpoolUnitPrice == 0 && in.Spool != "" {
		out.SpoolUnitPrice = in.Prices.InBase(in.Spool.Material(), in.Rates)
	}
	out.SpoolCost = float64(max(in.Dimensions.Quantity, 0)) * out.SpoolUnitPrice

	out.BaseCost = out.MaterialCost + out.SpoolCost
	out.CostWithOverhead, out.FinalCost = ApplyMarkup(out.BaseCost, out.OverheadPct, out.ProfitPct)
	out.UnitCost = UnitCost(out.FinalCost, in.Dimensions.Quantity)
	out.AreaCost = AreaCost(out.FinalCost, out.TotalAreaM2)
	return out
}

func manualOr(manual map[models.Material]float64, m models.Material, derived float64) float64 {
	if v, ok := manual[m]; ok {
		return NonNegative(v)
	}
	return derived
}

// RecutInput: hesaplanmış bir rulo partisinden ebat kesim maliyeti.
// PieceAreaM2 verilmezse parça en/boy (cm) üzerinden hesaplanır.
type RecutInput struct {
	ParentBaseCost    float64
	ParentTotalAreaM2 float64
	PieceWidthCm      float64
	PieceLengthCm     float64
	PieceAreaM2       float64
	OverheadPct       float64
	ProfitPct         float64
}

type RecutCost struct {
	PieceAreaM2      float64 `json:"piece_area_m2"`
	Pieces           int     `json:"pieces"`
	CostPerPiece     float64 `json:"cost_per_piece"`
	CostWithOverhead float64 `json:"cost_with_overhead"`
	FinalCost        float64 `json:"final_cost"`
}

// floor'da 0,1 yerine 0,0999... gelmesini önler
const pieceEpsilon = 1e-9

func Recut(in RecutInput) RecutCost {
	out := RecutCost{PieceAreaM2: NonNegative(in.PieceAreaM2)}
	if out.PieceAreaM2 == 0 {
		out.PieceAreaM2 = PieceArea(in.PieceWidthCm, in.PieceLengthCm)
	}

	pieces := math.Floor(Div(NonNegative(in.ParentTotalAreaM2), out.PieceAreaM2) + pieceEpsilon)
	if pieces < 1 {
		return out
	}
	out.Pieces = int(pieces)
	out.CostPerPiece = Div(NonNegative(in.ParentBaseCost), pieces)
	out.CostWithOverhead, out.FinalCost = ApplyMarkup(out.CostPerPiece, in.OverheadPct, in.ProfitPct)
	return out
}
