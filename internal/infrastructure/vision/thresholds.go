package vision

import "corrosion-monitor/internal/domain/entity"

// HSVBand диапазон цвета в шкале OpenCV: H 0..179, S и V 0..255, границы включительно.
type HSVBand struct {
	HueMin, HueMax uint8
	SatMin, SatMax uint8
	ValMin, ValMax uint8
}

// Contains сообщает, попадает ли пиксель в диапазон
func (b HSVBand) Contains(h, s, v uint8) bool {
	return h >= b.HueMin && h <= b.HueMax &&
		s >= b.SatMin && s <= b.SatMax &&
		v >= b.ValMin && v <= b.ValMax
}

// Thresholds пороги всех этапов классификации.
type Thresholds struct {
	MetalMinBrightness float64 // средняя яркость строго больше
	MetalMaxSaturation float64 // средняя насыщенность строго меньше
	RustBand           HSVBand
	CorrodedMinRatio   float64 // доля ржавчины в процентах строго больше
	MediumMinDensity   float64 // плотность границ для Medium, включительно
	HighMinDensity     float64 // плотность границ для High, включительно
	CannyLow           float64 // Кэнни после размытия 3x3
	CannyHigh          float64
}

// DefaultThresholds возвращает подобранные вручную пороги.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MetalMinBrightness: 110,
		MetalMaxSaturation: 80,
		RustBand: HSVBand{
			HueMin: 5, HueMax: 35,
			SatMin: 60, SatMax: 255,
			ValMin: 40, ValMax: 255,
		},
		CorrodedMinRatio: 3.0,
		MediumMinDensity: 1.0,
		HighMinDensity:   5.0,
		CannyLow:         20,
		CannyHigh:        80,
	}
}

// IsCorroded применяет порог доли ржавчины
func (t Thresholds) IsCorroded(ratioPercent float64) bool {
	return ratioPercent > t.CorrodedMinRatio
}

// Severity переводит плотность границ в степень коррозии.
func (t Thresholds) Severity(edgeDensityPercent float64) entity.Severity {
	switch {
	case edgeDensityPercent < t.MediumMinDensity:
		return entity.SeverityLow
	case edgeDensityPercent < t.HighMinDensity:
		return entity.SeverityMedium
	default:
		return entity.SeverityHigh
	}
}
