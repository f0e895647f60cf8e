// Package display показывает кадры с результатом классификации.
package display

import (
	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// Renderer отрисовщик, который также может попросить остановить цикл
type Renderer interface {
	port.Renderer
	port.StopSignal
}

// Headless отрисовщик без вывода, никогда не просит остановиться.
type Headless struct{}

// Render ничего не делает
func (Headless) Render(frame entity.Frame, analysis *entity.FrameAnalysis) error {
	return nil
}

// StopRequested всегда false
func (Headless) StopRequested() bool {
	return false
}

// Close ничего не делает
func (Headless) Close() error {
	return nil
}

// statusText подпись состояния для кадра
func statusText(r entity.ClassificationResult) string {
	if r.Material == entity.MaterialNonMetal {
		return "Not Corroded (Plastic/Non-Metal)"
	}
	return string(r.CorrosionStatus)
}

// severityText подпись степени коррозии
func severityText(s entity.Severity) string {
	return string(s) + " Corrosion"
}

var _ Renderer = Headless{}
