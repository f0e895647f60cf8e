package entity

import "image"

// PipelineState шаг обработки одного кадра
type PipelineState string

const (
	StateStart         PipelineState = "start"          // кадр получен
	StateMetalCheck    PipelineState = "metal_check"    // проверка материала
	StateNonMetal      PipelineState = "non_metal"      // конец: неметалл
	StateRustCheck     PipelineState = "rust_check"     // поиск ржавчины
	StateNotCorroded   PipelineState = "not_corroded"   // конец: коррозии нет
	StateSeverityCheck PipelineState = "severity_check" // оценка степени
	StateCorroded      PipelineState = "corroded"       // конец: коррозия
)

// Terminal сообщает, что на этом шаге обработка кадра закончена
func (s PipelineState) Terminal() bool {
	switch s {
	case StateNonMetal, StateNotCorroded, StateCorroded:
		return true
	}
	return false
}

// RustSegmentation результат выделения ржавых областей.
type RustSegmentation struct {
	RatioPercent float64     // доля ржавых пикселей в процентах
	PixelCount   int         // число ржавых пикселей
	Mask         *image.Gray // маска: 255 для ржавых пикселей
}

// SeverityGrade результат оценки степени коррозии.
type SeverityGrade struct {
	Severity           Severity
	EdgeDensityPercent float64     // граничные пиксели к ржавым, в процентах
	EdgePixelCount     int         // граничные пиксели по всему кадру
	Edges              *image.Gray // карта границ
}

// FrameAnalysis запись по кадру вместе с промежуточными картинками.
type FrameAnalysis struct {
	Result   ClassificationResult
	RustMask *image.Gray // есть, если кадр дошёл до поиска ржавчины
	Edges    *image.Gray // есть только при коррозии
	Trace    []PipelineState
}
