package costing

import (
	"time"

	"sar-ambalaj-backend/internal/models"
)

// 100 m² üretim başına ortalama hammadde tüketimi (kg)
const (
	petkimPer100M2 = 18.5
	estolPer100M2  = 0.92
	talkPer100M2   = 1.48
	gazPer100M2    = 2.05
)

type ConsumptionEstimate struct {
	Date          time.Time `json:"date"`
	Machine       string    `json:"machine"`
	TotalM2       float64   `json:"total_m2"`
	TotalQuantity int       `json:"total_quantity"`
	Petkim        float64   `json:"petkim"`
	Estol         float64   `json:"estol"`
	Talk          float64   `json:"talk"`
	Gaz           float64   `json:"gaz"`
}

// ConsumptionFromProduction üretim kayıtlarını tarih + makine bazında gruplayıp
// m²'ye göre tahmini günlük tüketimi çıkarır. Sıra ilk görülen kayda göredir.
func ConsumptionFromProduction(productions []models.Production) []ConsumptionEstimate {
	type key struct {
		day     string
		machine string
	}

	index := make(map[key]int)
	groups := make([]ConsumptionEstimate, 0)
	for _, p := range productions {
		k := key{day: p.Date.Format("2006-01-02"), machine: p.Machine}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ConsumptionEstimate{
				Date:    time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, p.Date.Location()),
				Machine: p.Machine,
			})
		}
		groups[i].TotalM2 += RollArea(p.WidthCm, p.LengthM, p.Quantity)
		groups[i].TotalQuantity += max(p.Quantity, 0)
	}

	for i := range groups {
		hundreds := groups[i].TotalM2 / 100
		groups[i].Petkim = Round2(hundreds * petkimPer100M2)
		groups[i].Estol = Round2(hundreds * estolPer100M2)
		groups[i].Talk = Round2(hundreds * talkPer100M2)
		groups[i].Gaz = Round2(hundreds * gazPer100M2)
		groups[i].TotalM2 = Round2(groups[i].TotalM2)
	}
	return groups
}
