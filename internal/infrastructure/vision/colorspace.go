package vision

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// hsvImage три канала HSV в восьмибитной шкале OpenCV.
type hsvImage struct {
	width, height int
	h, s, v       []uint8
}

// toHSV переводит кадр в HSV: H = градусы/2, S и V умножены на 255.
func toHSV(img *image.NRGBA) *hsvImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &hsvImage{
		width:  w,
		height: h,
		h:      make([]uint8, w*h),
		s:      make([]uint8, w*h),
		v:      make([]uint8, w*h),
	}

	k := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := 0; x < w; x++ {
			c := colorful.Color{
				R: float64(img.Pix[i]) / 255,
				G: float64(img.Pix[i+1]) / 255,
				B: float64(img.Pix[i+2]) / 255,
			}
			hh, ss, vv := c.Hsv()
			hue := uint8(math.Round(hh / 2))
			if hue >= 180 {
				hue -= 180
			}
			out.h[k] = hue
			out.s[k] = uint8(math.Round(ss * 255))
			out.v[k] = uint8(math.Round(vv * 255))
			i += 4
			k++
		}
	}
	return out
}

// meanSaturation средняя насыщенность по кадру
func (m *hsvImage) meanSaturation() float64 {
	return meanOf(m.s)
}

// grayPlane вынимает один канал из полутонового результата imaging.
func grayPlane(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	k := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			out.Pix[k] = img.Pix[i]
			i += 4
			k++
		}
	}
	return out
}

// toGray яркость 0.299R + 0.587G + 0.114B
func toGray(img *image.NRGBA) *image.Gray {
	return grayPlane(imaging.Grayscale(img))
}

func meanOf(values []uint8) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range values {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(values))
}

// countNonZero число ненулевых пикселей маски
func countNonZero(mask *image.Gray) int {
	n := 0
	for _, p := range mask.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}
