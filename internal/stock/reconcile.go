package stock

import (
	"strconv"
	"strings"

	"sar-ambalaj-backend/internal/costing"
	"sar-ambalaj-backend/internal/models"
)

// Entry tek bir ebat (kalınlık × en × boy × renk) için rulo stok durumu
type Entry struct {
	Thickness     string  `json:"thickness"`
	WidthCm       float64 `json:"width_cm"`
	LengthM       float64 `json:"length_m"`
	Color         string  `json:"color"`
	Produced      int     `json:"produced"`
	Shipped       int     `json:"shipped"`
	Remaining     int     `json:"remaining"`
	AreaRemaining float64 `json:"area_remaining_m2"`
}

type Report struct {
	Entries        []Entry           `json:"entries"`
	TotalRemaining int               `json:"total_remaining"`
	TotalAreaM2    float64           `json:"total_area_m2"`
	SpecCount      int               `json:"spec_count"`
	Unmatched      []models.Shipment `json:"unmatched"`
}

type groupKey struct {
	thickness string
	width     float64
	length    float64
	color     string
}

type group struct {
	entry   Entry
	widthTx string
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// thicknessKey "2", "2.0", "2,0" ve "2mm" yazımlarını aynı anahtara indirger.
// Sayıya çevrilemeyen metin olduğu gibi (normalize edilmiş) kullanılır.
func thicknessKey(s string) string {
	t := strings.TrimSpace(strings.TrimSuffix(norm(s), "mm"))
	if n := costing.Num(t); n != 0 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return t
}

// Reconcile üretimden Normal sevkiyatları düşerek ebat bazında kalan stoğu çıkarır.
// Batch kodu taşıyan sevkiyat o partinin grubuna yazılır. Kodsuz sevkiyatlar
// ebat metninde grubun enini içeren ve rengi tutan ilk gruba yazılır.
func Reconcile(productions []models.Production, shipments []models.Shipment) Report {
	index := make(map[groupKey]int)
	byBatch := make(map[string]int)
	groups := make([]*group, 0)

	for _, p := range productions {
		k := groupKey{
			thickness: thicknessKey(p.Thickness),
			width:     costing.NonNegative(p.WidthCm),
			length:    costing.NonNegative(p.LengthM),
			color:     norm(p.Color),
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, &group{
				entry: Entry{
					Thickness: strings.TrimSpace(p.Thickness),
					WidthCm:   k.width,
					LengthM:   k.length,
					Color:     strings.TrimSpace(p.Color),
				},
				widthTx: formatWidth(k.width),
			})
		}
		groups[i].entry.Produced += max(p.Quantity, 0)
		if p.BatchCode != "" {
			byBatch[p.BatchCode] = i
		}
	}

	report := Report{Entries: []Entry{}, Unmatched: []models.Shipment{}}
	for _, s := range shipments {
		if s.Type != models.ShipmentNormal {
			continue
		}
		i := match(groups, byBatch, s)
		if i < 0 {
			report.Unmatched = append(report.Unmatched, s)
			continue
		}
		groups[i].entry.Shipped += max(s.Quantity, 0)
	}

	for _, g := range groups {
		e := g.entry
		e.Remaining = e.Produced - e.Shipped
		if e.Remaining <= 0 {
			continue
		}
		e.AreaRemaining = costing.RollArea(e.WidthCm, e.LengthM, e.Remaining)
		report.Entries = append(report.Entries, e)
		report.TotalRemaining += e.Remaining
		report.TotalAreaM2 += e.AreaRemaining
	}
	report.SpecCount = len(report.Entries)
	return report
}

func match(groups []*group, byBatch map[string]int, s models.Shipment) int {
	if s.ProductionBatchCode != nil && *s.ProductionBatchCode != "" {
		if i, ok := byBatch[*s.ProductionBatchCode]; ok {
			return i
		}
		return -1
	}

	spec := s.SizeSpec
	color := norm(s.Color)
	for i, g := range groups {
		if g.entry.WidthCm <= 0 {
			continue
		}
		if strings.Contains(spec, g.widthTx) && color == norm(g.entry.Color) {
			return i
		}
	}
	return -1
}

// CutEntry ebat kesim stoğu
type CutEntry struct {
	CutSpec   string  `json:"cut_spec"`
	Color     string  `json:"color"`
	PieceM2   float64 `json:"piece_m2"`
	Produced  int     `json:"produced"`
	Shipped   int     `json:"shipped"`
	Remaining int     `json:"remaining"`
	AreaM2    float64 `json:"area_m2"`
}

type CutReport struct {
	Entries        []CutEntry `json:"entries"`
	TotalRemaining int        `json:"total_remaining"`
	TotalAreaM2    float64    `json:"total_area_m2"`
}

// ReconcileCut kesilmiş ürünlerden Kesim tipindeki sevkiyatları düşer.
// Eşleşme ebat metni ve renk üzerinden birebirdir.
func ReconcileCut(cuts []models.CutProduct, shipments []models.Shipment) CutReport {
	type key struct{ spec, color string }

	index := make(map[key]int)
	entries := make([]CutEntry, 0)
	for _, c := range cuts {
		k := key{spec: norm(c.CutSpec), color: norm(c.Color)}
		i, ok := index[k]
		if !ok {
			i = len(entries)
			index[k] = i
			entries = append(entries, CutEntry{
				CutSpec: strings.TrimSpace(c.CutSpec),
				Color:   strings.TrimSpace(c.Color),
				PieceM2: costing.PieceArea(c.CutWidthCm, c.CutLengthCm),
			})
		}
		entries[i].Produced += max(c.Quantity, 0)
	}

	for _, s := range shipments {
		if s.Type != models.ShipmentCut {
			continue
		}
		if i, ok := index[key{spec: norm(s.SizeSpec), color: norm(s.Color)}]; ok {
			entries[i].Shipped += max(s.Quantity, 0)
		}
	}

	report := CutReport{Entries: []CutEntry{}}
	for _, e := range entries {
		e.Remaining = e.Produced - e.Shipped
		if e.Remaining <= 0 {
			continue
		}
		e.AreaM2 = e.PieceM2 * float64(e.Remaining)
		report.Entries = append(report.Entries, e)
		report.TotalRemaining += e.Remaining
		report.TotalAreaM2 += e.AreaM2
	}
	return report
}
