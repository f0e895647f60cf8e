package vision

import (
	"fmt"
	"image"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// SeverityClassifier оценивает степень коррозии по плотности границ:
// чем шероховатее ржавчина, тем больше на ней границ.
type SeverityClassifier struct {
	th Thresholds
}

// NewSeverityClassifier создаёт классификатор степени коррозии
func NewSeverityClassifier(th Thresholds) *SeverityClassifier {
	return &SeverityClassifier{th: th}
}

// Classify считает границы по всему кадру и относит их к числу ржавых пикселей.
// При rustPixelCount == 0 плотность равна нулю.
func (c *SeverityClassifier) Classify(frame entity.Frame, rustPixelCount int) (*entity.SeverityGrade, error) {
	edges, err := c.EdgeMap(frame)
	if err != nil {
		return nil, err
	}
	edgeCount := countNonZero(edges)

	density := 0.0
	if rustPixelCount > 0 {
		density = 100 * float64(edgeCount) / float64(rustPixelCount)
	}

	return &entity.SeverityGrade{
		Severity:           c.th.Severity(density),
		EdgeDensityPercent: density,
		EdgePixelCount:     edgeCount,
		Edges:              edges,
	}, nil
}

// EdgeMap строит карту границ: серый, размытие, Кэнни.
func (c *SeverityClassifier) EdgeMap(frame entity.Frame) (*image.Gray, error) {
	if frame.Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0)), nil
	}
	edges, err := detectEdges(frame.Image, c.th)
	if err != nil {
		return nil, fmt.Errorf("edge map: %w", err)
	}
	return edges, nil
}

var _ port.SeverityClassifier = (*SeverityClassifier)(nil)
