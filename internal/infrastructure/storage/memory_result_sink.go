package storage

import (
	"context"
	"sync"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// MemoryResultSink in-memory журнал записей
type MemoryResultSink struct {
	mu      sync.RWMutex
	records []entity.ClassificationResult
}

// NewMemoryResultSink создаёт пустой журнал
func NewMemoryResultSink() *MemoryResultSink {
	return &MemoryResultSink{}
}

// Append сохраняет запись
func (s *MemoryResultSink) Append(ctx context.Context, result entity.ClassificationResult) error {
	s.mu.Lock()
	s.records = append(s.records, result)
	s.mu.Unlock()

	return nil
}

// Records возвращает копию всех записей
func (s *MemoryResultSink) Records() []entity.ClassificationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.ClassificationResult, len(s.records))
	copy(out, s.records)
	return out
}

// Len возвращает число записей
func (s *MemoryResultSink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Проверка реализации интерфейса
var _ port.ResultSink = (*MemoryResultSink)(nil)
