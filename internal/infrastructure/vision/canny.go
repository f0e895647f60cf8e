//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"math"
)

const (
	edgeNone uint8 = iota
	edgeWeak
	edgeStrong
)

var (
	tan22 = math.Tan(math.Pi / 8)
	tan67 = math.Tan(3 * math.Pi / 8)
)

// cannyDetector детектор границ Кэнни с двумя порогами.
// Градиент по Собелю 3x3, модуль |gx| + |gy|, края кадра дублируются.
type cannyDetector struct {
	low, high float64
}

// detect возвращает карту границ: 255 на границе, 0 иначе.
func (d cannyDetector) detect(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	at := func(x, y int) int {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return int(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)])
	}

	gx := make([]int, w*h)
	gy := make([]int, w*h)
	mag := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			sy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			k := y*w + x
			gx[k], gy[k] = sx, sy
			mag[k] = absInt(sx) + absInt(sy)
		}
	}

	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	state := make([]uint8, w*h)
	stack := make([]int, 0, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := y*w + x
			m := mag[k]
			if float64(m) <= d.low {
				continue
			}

			ax, ay := math.Abs(float64(gx[k])), math.Abs(float64(gy[k]))
			var back, fwd int
			diagonal := false
			switch {
			case ay <= ax*tan22:
				back, fwd = magAt(x-1, y), magAt(x+1, y)
			case ay >= ax*tan67:
				back, fwd = magAt(x, y-1), magAt(x, y+1)
			case (gx[k] > 0) == (gy[k] > 0):
				back, fwd, diagonal = magAt(x-1, y-1), magAt(x+1, y+1), true
			default:
				back, fwd, diagonal = magAt(x-1, y+1), magAt(x+1, y-1), true
			}
			if !isLocalMax(m, back, fwd, diagonal) {
				continue
			}

			if float64(m) > d.high {
				state[k] = edgeStrong
				stack = append(stack, k)
			} else {
				state[k] = edgeWeak
			}
		}
	}

	// Гистерезис: слабые границы остаются, только если касаются сильных.
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out.Pix[k] = 255

		x, y := k%w, k/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				n := ny*w + nx
				if state[n] == edgeWeak {
					state[n] = edgeStrong
					stack = append(stack, n)
				}
			}
		}
	}

	return out
}

// isLocalMax подавление немаксимумов как в OpenCV: по горизонтали и вертикали
// сосед "вперёд" сравнивается нестрого, чтобы ровная ступенька давала линию
// в один пиксель, по диагоналям оба соседа строго.
func isLocalMax(m, back, fwd int, diagonal bool) bool {
	if diagonal {
		return m > back && m > fwd
	}
	return m > back && m >= fwd
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
