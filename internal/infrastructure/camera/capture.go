//go:build gocv
// +build gocv

package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// Capture источник кадров с камеры через OpenCV.
type Capture struct {
	device int
	cap    *gocv.VideoCapture
	mat    gocv.Mat
}

// Open открывает камеру по номеру устройства.
func Open(deviceIndex int) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(deviceIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %w", entity.ErrCaptureUnavailable, deviceIndex, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: device %d is not opened", entity.ErrCaptureUnavailable, deviceIndex)
	}
	return &Capture{device: deviceIndex, cap: vc, mat: gocv.NewMat()}, nil
}

// Next читает кадр с камеры. Чтение блокирует цикл до прихода кадра.
func (c *Capture) Next(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}
	if ok := c.cap.Read(&c.mat); !ok || c.mat.Empty() {
		return entity.Frame{}, fmt.Errorf("%w: device %d returned no frame", entity.ErrCaptureFailed, c.device)
	}
	capturedAt := time.Now()

	// ToImage переводит BGR в RGBA, дальше работаем с NRGBA.
	img, err := c.mat.ToImage()
	if err != nil {
		return entity.Frame{}, fmt.Errorf("%w: convert frame: %w", entity.ErrCaptureFailed, err)
	}
	return entity.NewFrame(imaging.Clone(img), capturedAt), nil
}

// Close освобождает камеру
func (c *Capture) Close() error {
	c.mat.Close()
	return c.cap.Close()
}

var _ port.FrameSource = (*Capture)(nil)
