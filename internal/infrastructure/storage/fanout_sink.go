package storage

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// FanOutSink отправляет каждую запись во все получатели по очереди.
// Ошибка одного получателя не мешает остальным.
type FanOutSink struct {
	sinks []port.ResultSink
}

// NewFanOutSink объединяет получателей
func NewFanOutSink(sinks ...port.ResultSink) *FanOutSink {
	return &FanOutSink{sinks: sinks}
}

// Append пишет запись во все получатели и собирает ошибки.
func (s *FanOutSink) Append(ctx context.Context, result entity.ClassificationResult) error {
	var errs error
	for _, sink := range s.sinks {
		errs = multierr.Append(errs, sink.Append(ctx, result))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", entity.ErrSinkUnavailable, errs)
	}
	return nil
}

var _ port.ResultSink = (*FanOutSink)(nil)
