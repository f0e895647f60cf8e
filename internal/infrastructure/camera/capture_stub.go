//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"fmt"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// Capture заглушка камеры для сборки без OpenCV.
type Capture struct{}

// Open всегда возвращает ошибку, если сборка без тега gocv.
func Open(deviceIndex int) (*Capture, error) {
	return nil, fmt.Errorf("%w: device %d: gocv build tag is not enabled", entity.ErrCaptureUnavailable, deviceIndex)
}

// Next возвращает ошибку, если сборка без тега gocv.
func (c *Capture) Next(ctx context.Context) (entity.Frame, error) {
	_ = ctx
	return entity.Frame{}, fmt.Errorf("%w: gocv build tag is not enabled", entity.ErrCaptureFailed)
}

// Close ничего не делает
func (c *Capture) Close() error {
	return nil
}

var _ port.FrameSource = (*Capture)(nil)
