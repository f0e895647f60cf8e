//go:build !gocv
// +build !gocv

package display

// New без OpenCV окон нет, всегда возвращается Headless.
func New(headless bool) Renderer {
	_ = headless
	return Headless{}
}
