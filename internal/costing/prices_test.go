package costing

import (
	"testing"
	"time"

	"sar-ambalaj-backend/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentPrices(t *testing.T) {
	purchases := []models.MaterialPurchase{
		{ID: 1, Date: day(1), Material: models.MaterialPetkim, UnitPrice: 1.1, Currency: models.CurrencyUSD},
		{ID: 3, Date: day(5), Material: models.MaterialPetkim, UnitPrice: 1.3, Currency: models.CurrencyUSD},
		{ID: 2, Date: day(3), Material: models.MaterialPetkim, UnitPrice: 1.2, Currency: models.CurrencyUSD},
		{ID: 4, Date: day(2), Material: models.MaterialTalk, UnitPrice: 9, Currency: models.Currency("TL")},
		{ID: 6, Date: day(2), Material: models.MaterialTalk, UnitPrice: 11, Currency: models.Currency("tl")},
		{ID: 5, Date: day(2), Material: models.MaterialTalk, UnitPrice: 10, Currency: models.CurrencyTRY},
	}

	prices := CurrentPrices(purchases)
	if len(prices) != 2 {
		t.Fatalf("2 hammadde beklenir, got %d", len(prices))
	}
	if p := prices[models.MaterialPetkim]; p.UnitPrice != 1.3 || p.Currency != models.CurrencyUSD {
		t.Fatalf("PETKIM en son tarihli giriş olmalı: %+v", p)
	}
	if p := prices[models.MaterialTalk]; p.UnitPrice != 11 || p.Currency != models.CurrencyTRY {
		t.Fatalf("aynı tarihte büyük ID kazanmalı ve TL normalize edilmeli: %+v", p)
	}
	if _, ok := prices[models.MaterialGaz]; ok {
		t.Fatalf("girişi olmayan hammadde listede olmamalı")
	}
}

func TestPurchaseTotal(t *testing.T) {
	tests := []struct {
		qty, price, rate float64
		want             float64
	}{
		{1000, 1.25, 42, 52500},
		{3, 0.333, 1, 1},
		{25, 10, 0, 0},
		{-4, 10, 1, 0},
	}
	for _, tt := range tests {
		if got := PurchaseTotal(tt.qty, tt.price, tt.rate); got != tt.want {
			t.Fatalf("PurchaseTotal(%v, %v, %v) = %v, want %v", tt.qty, tt.price, tt.rate, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.01},
		{2.344, 2.34},
		{-1.555, -1.56},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Fatalf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
