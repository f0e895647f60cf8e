//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// detectEdges серый, размытие 3x3, Кэнни средствами OpenCV.
func detectEdges(img *image.NRGBA, th Thresholds) (*image.Gray, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("frame to mat: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(3, 3), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, float32(th.CannyLow), float32(th.CannyHigh))

	return matToGray(edges), nil
}

// rustMask маска пикселей из диапазона band через inRange в HSV.
func rustMask(img *image.NRGBA, band HSVBand) (*image.Gray, int, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, 0, fmt.Errorf("frame to mat: %w", err)
	}
	defer src.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	lower := gocv.NewScalar(float64(band.HueMin), float64(band.SatMin), float64(band.ValMin), 0)
	upper := gocv.NewScalar(float64(band.HueMax), float64(band.SatMax), float64(band.ValMax), 0)
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	return matToGray(mask), gocv.CountNonZero(mask), nil
}

// matToGray копирует одноканальную Mat в image.Gray
func matToGray(m gocv.Mat) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Cols(), m.Rows()))
	copy(out.Pix, m.ToBytes())
	return out
}
