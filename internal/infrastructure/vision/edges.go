//go:build !gocv
// +build !gocv

package vision

import (
	"image"

	"github.com/disintegration/imaging"
)

// gaussian3x3 ядро, которое OpenCV строит для размера 3x3 при sigma=0.
var gaussian3x3 = [9]float64{
	1, 2, 1,
	2, 4, 2,
	1, 2, 1,
}

// blurredGray яркость после гауссова размытия 3x3, края кадра дублируются.
func blurredGray(img *image.NRGBA) *image.Gray {
	blurred := imaging.Convolve3x3(imaging.Grayscale(img), gaussian3x3, &imaging.ConvolveOptions{Normalize: true})
	return grayPlane(blurred)
}

// detectEdges серый, размытие, Кэнни без OpenCV.
func detectEdges(img *image.NRGBA, th Thresholds) (*image.Gray, error) {
	d := cannyDetector{low: th.CannyLow, high: th.CannyHigh}
	return d.detect(blurredGray(img)), nil
}

// rustMask маска пикселей из диапазона band и их число.
func rustMask(img *image.NRGBA, band HSVBand) (*image.Gray, int, error) {
	hsv := toHSV(img)
	mask := image.NewGray(image.Rect(0, 0, hsv.width, hsv.height))
	count := 0
	for i := range mask.Pix {
		if band.Contains(hsv.h[i], hsv.s[i], hsv.v[i]) {
			mask.Pix[i] = 255
			count++
		}
	}
	return mask, count, nil
}
