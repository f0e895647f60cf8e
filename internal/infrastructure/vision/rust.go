package vision

import (
	"fmt"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// RustSegmenter выделяет пиксели цвета ржавчины
type RustSegmenter struct {
	th Thresholds
}

// NewRustSegmenter создаёт сегментатор ржавчины
func NewRustSegmenter(th Thresholds) *RustSegmenter {
	return &RustSegmenter{th: th}
}

// Segment строит маску ржавчины и считает её долю в кадре.
func (s *RustSegmenter) Segment(frame entity.Frame) (*entity.RustSegmentation, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("segment rust: %w: %dx%d", entity.ErrInvalidFrame, frame.Width(), frame.Height())
	}

	mask, count, err := rustMask(frame.Image, s.th.RustBand)
	if err != nil {
		return nil, fmt.Errorf("segment rust: %w", err)
	}

	return &entity.RustSegmentation{
		RatioPercent: 100 * float64(count) / float64(frame.Area()),
		PixelCount:   count,
		Mask:         mask,
	}, nil
}

// IsCorroded сообщает, что доля ржавчины выше порога
func (s *RustSegmenter) IsCorroded(ratioPercent float64) bool {
	return s.th.IsCorroded(ratioPercent)
}

var _ port.RustSegmenter = (*RustSegmenter)(nil)
