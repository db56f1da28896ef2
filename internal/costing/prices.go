package costing

import "sar-ambalaj-backend/internal/models"

// CurrentPrices her hammadde için en son girişin birim fiyatını ve para
// birimini döner. Aynı tarihte birden fazla giriş varsa ID'si büyük olan geçerlidir.
func CurrentPrices(purchases []models.MaterialPurchase) PriceList {
	latest := make(map[models.Material]models.MaterialPurchase)
	for _, p := range purchases {
		cur, ok := latest[p.Material]
		if !ok || p.Date.After(cur.Date) || (p.Date.Equal(cur.Date) && p.ID > cur.ID) {
			latest[p.Material] = p
		}
	}

	prices := make(PriceList, len(latest))
	for m, p := range latest {
		prices[m] = Price{
			UnitPrice: NonNegative(p.UnitPrice),
			Currency:  models.ParseCurrency(string(p.Currency)),
		}
	}
	return prices
}

// PurchaseTotal bir girişin TL toplamı: miktar × birim fiyat × giriş kuru
func PurchaseTotal(quantity, unitPrice, exchangeRate float64) float64 {
	return Round2(NonNegative(quantity) * NonNegative(unitPrice) * NonNegative(exchangeRate))
}
