package entity

import (
	"fmt"
	"strconv"
	"time"
)

// NotApplicable текстовая метка для отсутствующих полей записи
const NotApplicable = "N/A"

// TimestampLayout формат времени в записи
const TimestampLayout = "2006-01-02 15:04:05"

// Material материал объекта в кадре
type Material string

const (
	MaterialNonMetal Material = "Non-Metal"
	MaterialMetal    Material = "Metal"
)

// CorrosionStatus состояние коррозии
type CorrosionStatus string

const (
	CorrosionNotApplicable CorrosionStatus = NotApplicable  // объект не металлический
	CorrosionNotCorroded   CorrosionStatus = "Not Corroded" // ржавчины меньше порога
	CorrosionCorroded      CorrosionStatus = "Corroded"     // ржавчина обнаружена
)

// Severity степень коррозии
type Severity string

const (
	SeverityNotApplicable Severity = NotApplicable
	SeverityLow           Severity = "Low"
	SeverityMedium        Severity = "Medium"
	SeverityHigh          Severity = "High"
)

// Percent необязательное значение в процентах
type Percent struct {
	Value float64
	Valid bool
}

// PercentOf создаёт заданное значение
func PercentOf(v float64) Percent {
	return Percent{Value: v, Valid: true}
}

// String форматирует значение с двумя знаками или возвращает N/A
func (p Percent) String() string {
	if !p.Valid {
		return NotApplicable
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64)
}

// ClassificationResult итоговая запись по одному кадру.
type ClassificationResult struct {
	Timestamp          time.Time
	Material           Material
	CorrosionStatus    CorrosionStatus
	Severity           Severity
	RustRatioPercent   Percent // отсутствует для неметалла
	EdgeDensityPercent Percent // есть только при коррозии
}

// NewNonMetalResult запись для неметаллического объекта
func NewNonMetalResult(ts time.Time) ClassificationResult {
	return ClassificationResult{
		Timestamp:       ts,
		Material:        MaterialNonMetal,
		CorrosionStatus: CorrosionNotApplicable,
		Severity:        SeverityNotApplicable,
	}
}

// NewNotCorrodedResult запись для металла без коррозии
func NewNotCorrodedResult(ts time.Time, rustRatio float64) ClassificationResult {
	return ClassificationResult{
		Timestamp:        ts,
		Material:         MaterialMetal,
		CorrosionStatus:  CorrosionNotCorroded,
		Severity:         SeverityNotApplicable,
		RustRatioPercent: PercentOf(rustRatio),
	}
}

// NewCorrodedResult запись для металла с коррозией
func NewCorrodedResult(ts time.Time, rustRatio float64, severity Severity, edgeDensity float64) ClassificationResult {
	return ClassificationResult{
		Timestamp:          ts,
		Material:           MaterialMetal,
		CorrosionStatus:    CorrosionCorroded,
		Severity:           severity,
		RustRatioPercent:   PercentOf(rustRatio),
		EdgeDensityPercent: PercentOf(edgeDensity),
	}
}

// IsCorroded сообщает, что объект признан корродированным
func (r ClassificationResult) IsCorroded() bool {
	return r.CorrosionStatus == CorrosionCorroded
}

// Validate проверяет согласованность полей записи.
func (r ClassificationResult) Validate() error {
	switch r.Material {
	case MaterialNonMetal:
		if r.CorrosionStatus != CorrosionNotApplicable {
			return fmt.Errorf("non-metal result has corrosion status %q", r.CorrosionStatus)
		}
		if r.RustRatioPercent.Valid {
			return fmt.Errorf("non-metal result has rust ratio")
		}
	case MaterialMetal:
		if r.CorrosionStatus != CorrosionNotCorroded && r.CorrosionStatus != CorrosionCorroded {
			return fmt.Errorf("metal result has corrosion status %q", r.CorrosionStatus)
		}
		if !r.RustRatioPercent.Valid {
			return fmt.Errorf("metal result has no rust ratio")
		}
		if r.RustRatioPercent.Value < 0 || r.RustRatioPercent.Value > 100 {
			return fmt.Errorf("rust ratio %.4f out of range", r.RustRatioPercent.Value)
		}
	default:
		return fmt.Errorf("unknown material %q", r.Material)
	}

	graded := r.Severity != SeverityNotApplicable
	if graded != r.EdgeDensityPercent.Valid {
		return fmt.Errorf("severity %q and edge density presence disagree", r.Severity)
	}
	if graded != r.IsCorroded() {
		return fmt.Errorf("severity %q with corrosion status %q", r.Severity, r.CorrosionStatus)
	}
	return nil
}

// Fields возвращает поля записи в текстовом виде в порядке столбцов таблицы:
// время, материал, состояние, степень, доля ржавчины, плотность границ.
func (r ClassificationResult) Fields() []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		string(r.Material),
		string(r.CorrosionStatus),
		string(r.Severity),
		r.RustRatioPercent.String(),
		r.EdgeDensityPercent.String(),
	}
}
