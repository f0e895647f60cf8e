//go:build gocv
// +build gocv

package display

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

const (
	liveTitle  = "Live Corrosion Detection"
	maskTitle  = "Rust Mask"
	edgesTitle = "Edge Detection"
	stopKey    = 'q'
)

var (
	green  = color.RGBA{G: 255, A: 255}
	orange = color.RGBA{R: 255, G: 165, A: 255}
	red    = color.RGBA{R: 255, A: 255}
)

// Window окна OpenCV: живое видео, маска ржавчины и карта границ.
type Window struct {
	live, mask, edges *gocv.Window
	stop              bool
}

// New открывает окна. При headless вернёт отрисовщик без вывода.
func New(headless bool) Renderer {
	if headless {
		return Headless{}
	}
	return &Window{live: gocv.NewWindow(liveTitle)}
}

// Render рисует подписи на копии кадра и показывает промежуточные картинки.
func (w *Window) Render(frame entity.Frame, analysis *entity.FrameAnalysis) error {
	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return fmt.Errorf("frame to mat: %w", err)
	}
	defer mat.Close()

	result := analysis.Result
	gocv.PutText(&mat, statusText(result), image.Pt(50, 50), gocv.FontHersheySimplex, 1, statusColor(result), 2)
	if result.IsCorroded() {
		gocv.PutText(&mat, severityText(result.Severity), image.Pt(50, 100), gocv.FontHersheySimplex, 1, severityColor(result.Severity), 2)
	}
	w.live.IMShow(mat)

	if analysis.RustMask != nil {
		if err := w.showGray(&w.mask, maskTitle, analysis.RustMask); err != nil {
			return err
		}
	}
	if analysis.Edges != nil {
		if err := w.showGray(&w.edges, edgesTitle, analysis.Edges); err != nil {
			return err
		}
	}

	if w.live.WaitKey(1)&0xFF == stopKey {
		w.stop = true
	}
	return nil
}

func (w *Window) showGray(win **gocv.Window, title string, img *image.Gray) error {
	mat, err := gocv.ImageGrayToMatGray(img)
	if err != nil {
		return fmt.Errorf("%s to mat: %w", title, err)
	}
	defer mat.Close()

	if *win == nil {
		*win = gocv.NewWindow(title)
	}
	(*win).IMShow(mat)
	return nil
}

// StopRequested сообщает, что в окне нажата клавиша q
func (w *Window) StopRequested() bool {
	return w.stop
}

// Close закрывает все окна
func (w *Window) Close() error {
	for _, win := range []*gocv.Window{w.live, w.mask, w.edges} {
		if win != nil {
			win.Close()
		}
	}
	return nil
}

func statusColor(r entity.ClassificationResult) color.RGBA {
	if r.IsCorroded() {
		return red
	}
	return green
}

func severityColor(s entity.Severity) color.RGBA {
	switch s {
	case entity.SeverityMedium:
		return orange
	case entity.SeverityHigh:
		return red
	default:
		return green
	}
}

var _ port.Renderer = (*Window)(nil)
var _ port.StopSignal = (*Window)(nil)
