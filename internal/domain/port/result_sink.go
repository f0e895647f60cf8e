package port

import (
	"context"

	"corrosion-monitor/internal/domain/entity"
)

// ResultSink получатель записей по кадрам
type ResultSink interface {
	// Append дописывает одну запись; ошибки оборачивают entity.ErrSinkUnavailable
	Append(ctx context.Context, result entity.ClassificationResult) error
}

// Alerter оповещает людей о результатах. Сам решает, о каких именно.
type Alerter interface {
	// Alert ошибки оборачивают entity.ErrAlertUnavailable
	Alert(ctx context.Context, result entity.ClassificationResult) error
}
