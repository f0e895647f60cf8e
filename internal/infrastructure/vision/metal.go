package vision

import (
	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// MetalClassifier отличает металл по яркости и насыщенности:
// металл светлый и почти бесцветный.
type MetalClassifier struct {
	th Thresholds
}

// NewMetalClassifier создаёт классификатор материала
func NewMetalClassifier(th Thresholds) *MetalClassifier {
	return &MetalClassifier{th: th}
}

// Measure возвращает среднюю яркость и среднюю насыщенность кадра.
func (c *MetalClassifier) Measure(frame entity.Frame) (brightness, saturation float64) {
	if frame.Empty() {
		return 0, 0
	}
	brightness = meanOf(toGray(frame.Image).Pix)
	saturation = toHSV(frame.Image).meanSaturation()
	return brightness, saturation
}

// IsMetal сообщает, что объект в кадре металлический
func (c *MetalClassifier) IsMetal(frame entity.Frame) bool {
	if frame.Empty() {
		return false
	}
	brightness, saturation := c.Measure(frame)
	return brightness > c.th.MetalMinBrightness && saturation < c.th.MetalMaxSaturation
}

var _ port.MetalClassifier = (*MetalClassifier)(nil)
