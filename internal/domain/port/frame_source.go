package port

import (
	"context"

	"corrosion-monitor/internal/domain/entity"
)

// FrameSource источник кадров
type FrameSource interface {
	// Next блокируется до получения следующего кадра.
	// Конечный источник возвращает io.EOF, когда кадры закончились.
	Next(ctx context.Context) (entity.Frame, error)

	// Close освобождает устройство
	Close() error
}
