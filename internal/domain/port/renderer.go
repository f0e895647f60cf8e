package port

import "corrosion-monitor/internal/domain/entity"

// Renderer показывает кадр с результатом анализа
type Renderer interface {
	Render(frame entity.Frame, analysis *entity.FrameAnalysis) error
	Close() error
}

// StopSignal внешний сигнал остановки цикла
type StopSignal interface {
	StopRequested() bool
}
