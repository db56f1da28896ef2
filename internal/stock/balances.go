package stock

import (
	"sar-ambalaj-backend/internal/costing"
	"sar-ambalaj-backend/internal/models"
)

type MaterialBalance struct {
	Material  models.Material     `json:"material"`
	Unit      models.MaterialUnit `json:"unit"`
	Purchased float64             `json:"purchased"`
	Consumed  float64             `json:"consumed"`
	Balance   float64             `json:"balance"`
}

func unitOf(m models.Material) models.MaterialUnit {
	if m.IsSpool() {
		return models.UnitPiece
	}
	return models.UnitKilogram
}

// MaterialBalances alınan miktardan günlük tüketimi ve üretimde kullanılan
// masura adedini düşer. Sıra AllMaterials sırasıdır.
func MaterialBalances(purchases []models.MaterialPurchase, consumptions []models.DailyConsumption, productions []models.Production) []MaterialBalance {
	purchased := make(map[models.Material]float64)
	consumed := make(map[models.Material]float64)

	for _, p := range purchases {
		if p.EntryType != "" && p.EntryType != models.EntryTypeIn {
			continue
		}
		purchased[p.Material] += costing.NonNegative(p.Quantity)
	}

	for _, c := range consumptions {
		consumed[models.MaterialPetkim] += costing.NonNegative(c.Petkim)
		consumed[models.MaterialEstol] += costing.NonNegative(c.Estol)
		consumed[models.MaterialTalk] += costing.NonNegative(c.Talk)
		consumed[models.MaterialGaz] += costing.NonNegative(c.Gaz)
		consumed[models.MaterialSari] += costing.NonNegative(c.Sari)
	}

	for _, p := range productions {
		spool := models.ParseSpoolType(string(p.SpoolType))
		if spool == "" {
			continue
		}
		consumed[spool.Material()] += float64(max(p.Quantity, 0))
	}

	out := make([]MaterialBalance, 0, len(models.AllMaterials))
	for _, m := range models.AllMaterials {
		out = append(out, MaterialBalance{
			Material:  m,
			Unit:      unitOf(m),
			Purchased: costing.Round2(purchased[m]),
			Consumed:  costing.Round2(consumed[m]),
			Balance:   costing.Round2(purchased[m] - consumed[m]),
		})
	}
	return out
}

type Inputs struct {
	Productions  []models.Production
	CutProducts  []models.CutProduct
	Shipments    []models.Shipment
	Purchases    []models.MaterialPurchase
	Consumptions []models.DailyConsumption
}

type Stats struct {
	NormalStock      int               `json:"normal_stock"`
	NormalStockM2    float64           `json:"normal_stock_m2"`
	CutStock         int               `json:"cut_stock"`
	CutStockM2       float64           `json:"cut_stock_m2"`
	SpecCount        int               `json:"spec_count"`
	ProductionCount  int               `json:"production_count"`
	UnmatchedCount   int               `json:"unmatched_count"`
	MaterialBalances []MaterialBalance `json:"material_balances"`
}

func ComputeStats(in Inputs) Stats {
	normal := Reconcile(in.Productions, in.Shipments)
	cut := ReconcileCut(in.CutProducts, in.Shipments)
	return Stats{
		NormalStock:      normal.TotalRemaining,
		NormalStockM2:    costing.Round2(normal.TotalAreaM2),
		CutStock:         cut.TotalRemaining,
		CutStockM2:       costing.Round2(cut.TotalAreaM2),
		SpecCount:        normal.SpecCount,
		ProductionCount:  len(in.Productions),
		UnmatchedCount:   len(normal.Unmatched),
		MaterialBalances: MaterialBalances(in.Purchases, in.Consumptions, in.Productions),
	}
}
