package entity

import (
	"image"
	"time"
)

// Frame кадр с камеры: RGB-пиксели и момент захвата.
// Пайплайн только читает Image и никогда его не изменяет.
type Frame struct {
	Image      *image.NRGBA // пиксели кадра (альфа-канал игнорируется)
	CapturedAt time.Time    // момент захвата
}

// NewFrame создаёт кадр из готового изображения
func NewFrame(img *image.NRGBA, capturedAt time.Time) Frame {
	return Frame{Image: img, CapturedAt: capturedAt}
}

// Width возвращает ширину кадра в пикселях
func (f Frame) Width() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Rect.Dx()
}

// Height возвращает высоту кадра в пикселях
func (f Frame) Height() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Rect.Dy()
}

// Area возвращает количество пикселей кадра
func (f Frame) Area() int {
	return f.Width() * f.Height()
}

// Empty сообщает, что в кадре нет ни одного пикселя
func (f Frame) Empty() bool {
	return f.Area() == 0
}

// Timestamp возвращает момент захвата с точностью до секунды
func (f Frame) Timestamp() time.Time {
	return f.CapturedAt.Truncate(time.Second)
}
