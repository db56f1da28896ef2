package costing

import (
	"time"

	"sar-ambalaj-backend/internal/models"
)

const BaseCurrency = models.CurrencyTRY

// Rates güncel kur anlık görüntüsü: 1 birim döviz = X TL
type Rates struct {
	USD         float64   `json:"usd"`
	EUR         float64   `json:"eur"`
	LastUpdated time.Time `json:"last_updated"`
}

func RatesFrom(r models.ExchangeRate) Rates {
	return Rates{USD: r.USD, EUR: r.EUR, LastUpdated: r.UpdatedAt}
}

// Multiplier para birimini TL'ye çeviren çarpan. TL için kur değerinden
// bağımsız olarak 1 döner. Bilinmeyen kodlar TL kabul edilir.
func (r Rates) Multiplier(c models.Currency) float64 {
	switch c {
	case BaseCurrency:
		return 1
	case models.CurrencyUSD:
		return NonNegative(r.USD)
	case models.CurrencyEUR:
		return NonNegative(r.EUR)
	}
	return 1
}

func (r Rates) ToBase(amount float64, c models.Currency) float64 {
	return finite(amount) * r.Multiplier(c)
}
