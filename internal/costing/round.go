package costing

import "github.com/shopspring/decimal"

// Round2 para ve miktar çıktıları için 2 basamağa yuvarlar.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(finite(v)).Round(2).InexactFloat64()
}
