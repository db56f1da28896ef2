package costing

import (
	"math"
	"strconv"
	"strings"
)

// Rulo (en cm × boy m) ve ebat (en cm × boy cm) hesapları aynı böleni kullanır.
const cm2PerM2 = 10_000

// Num serbest metni sayıya çevirir. Boş, sayısal olmayan, NaN veya sonsuz
// değerler 0 olur. "2,5" gibi ondalık virgül kabul edilir.
func Num(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NonNegative negatif ve sonlu olmayan değerleri 0 kabul eder.
func NonNegative(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}

// Div sıfıra bölmede 0 döner.
func Div(a, b float64) float64 {
	a, b = finite(a), finite(b)
	if b == 0 {
		return 0
	}
	return finite(a / b)
}

// RollArea rulo toplam alanı: en(cm) × boy(m) × adet / 10.000
func RollArea(widthCm, lengthM float64, quantity int) float64 {
	return RollUnitArea(widthCm, lengthM) * float64(max(quantity, 0))
}

// RollUnitArea tek rulonun alanı (m²)
func RollUnitArea(widthCm, lengthM float64) float64 {
	return NonNegative(widthCm) * NonNegative(lengthM) / cm2PerM2
}

// PieceArea ebat parçanın alanı: en(cm) × boy(cm) / 10.000
func PieceArea(widthCm, lengthCm float64) float64 {
	return NonNegative(widthCm) * NonNegative(lengthCm) / cm2PerM2
}

func PieceBatchArea(widthCm, lengthCm float64, quantity int) float64 {
	return PieceArea(widthCm, lengthCm) * float64(max(quantity, 0))
}

// Dimensions rulo ölçüleri. Boy metre cinsindendir.
type Dimensions struct {
	WidthCm  float64 `json:"width_cm"`
	LengthM  float64 `json:"length_m"`
	Quantity int     `json:"quantity"`
}

func (d Dimensions) TotalArea() float64 {
	return RollArea(d.WidthCm, d.LengthM, d.Quantity)
}

func (d Dimensions) UnitArea() float64 {
	return RollUnitArea(d.WidthCm, d.LengthM)
}
