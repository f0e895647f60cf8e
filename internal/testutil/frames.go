// Package testutil строит синтетические кадры для тестов.
package testutil

import (
	"image"
	"image/color"
	"time"

	"corrosion-monitor/internal/domain/entity"
)

var (
	// Rust светлая ржавчина: H=11, S=102, V=200, яркость 162
	Rust = color.NRGBA{R: 200, G: 150, B: 120, A: 255}
	// DarkRust тёмная ржавчина: H=13, S=149, V=120, яркость 89
	DarkRust = color.NRGBA{R: 120, G: 80, B: 50, A: 255}
	// Gray нейтральный серый металл
	Gray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	// White белый без насыщенности
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// CapturedAt фиксированное время захвата
var CapturedAt = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// Fill кадр одного цвета
func Fill(w, h int, c color.NRGBA) entity.Frame {
	return Paint(w, h, func(x, y int) color.NRGBA { return c })
}

// Split левая половина одного цвета, правая другого
func Split(w, h int, left, right color.NRGBA) entity.Frame {
	return Paint(w, h, func(x, y int) color.NRGBA {
		if x < w/2 {
			return left
		}
		return right
	})
}

// CheckerSplit левая половина шахматная доска из клеток cell x cell, правая цвета right
func CheckerSplit(w, h, cell int, a, b, right color.NRGBA) entity.Frame {
	return Paint(w, h, func(x, y int) color.NRGBA {
		if x >= w/2 {
			return right
		}
		if (x/cell+y/cell)%2 == 0 {
			return a
		}
		return b
	})
}

// Paint кадр, раскрашенный функцией
func Paint(w, h int, fn func(x, y int) color.NRGBA) entity.Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fn(x, y))
		}
	}
	return entity.NewFrame(img, CapturedAt)
}
