package port

import "corrosion-monitor/internal/domain/entity"

// MetalClassifier определяет, металлический ли объект в кадре
type MetalClassifier interface {
	IsMetal(frame entity.Frame) bool
}

// RustSegmenter выделяет ржавые области
type RustSegmenter interface {
	// Segment возвращает entity.ErrInvalidFrame для кадра нулевой площади
	Segment(frame entity.Frame) (*entity.RustSegmentation, error)

	// IsCorroded применяет порог доли ржавчины
	IsCorroded(ratioPercent float64) bool
}

// SeverityClassifier оценивает степень коррозии по плотности границ
type SeverityClassifier interface {
	Classify(frame entity.Frame, rustPixelCount int) (*entity.SeverityGrade, error)
}
