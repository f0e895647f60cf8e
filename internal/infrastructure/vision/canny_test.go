//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/testutil"
)

func TestBlurredGray_ThreeTapKernel(t *testing.T) {
	black := color.NRGBA{A: 255}
	gray := blurredGray(testutil.Split(40, 4, black, testutil.Gray).Image)

	// Ядро 1/4, 1/2, 1/4: ступенька 0 -> 200 размывается ровно на два пикселя.
	require.Equal(t, uint8(0), gray.GrayAt(18, 2).Y)
	require.Equal(t, uint8(50), gray.GrayAt(19, 2).Y)
	require.Equal(t, uint8(150), gray.GrayAt(20, 2).Y)
	require.Equal(t, uint8(200), gray.GrayAt(21, 2).Y)
}

func TestSeverityClassifier_StepEdgeIsOnePixelWide(t *testing.T) {
	c := NewSeverityClassifier(DefaultThresholds())

	grade, err := c.Classify(testutil.Split(400, 100, testutil.Rust, testutil.Gray), 20000)
	require.NoError(t, err)
	require.Equal(t, 100, grade.EdgePixelCount)
	require.InDelta(t, 0.5, grade.EdgeDensityPercent, 1e-9)
	require.Equal(t, entity.SeverityLow, grade.Severity)
}

func TestIsLocalMax(t *testing.T) {
	// По горизонтали и вертикали равный сосед впереди не мешает.
	require.True(t, isLocalMax(100, 40, 100, false))
	require.False(t, isLocalMax(100, 100, 40, false))

	// По диагонали равный сосед с любой стороны подавляет пиксель.
	require.False(t, isLocalMax(100, 40, 100, true))
	require.False(t, isLocalMax(100, 100, 40, true))
	require.True(t, isLocalMax(100, 99, 99, true))
}

func TestCannyDetector_Hysteresis(t *testing.T) {
	// Вертикальная ступенька 0 -> 40 даёт модуль 160 (сильная),
	// ступенька 0 -> 10 даёт 40 (слабая, без связи с сильной).
	gray := image.NewGray(image.Rect(0, 0, 20, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 20; x++ {
			switch {
			case x >= 5 && x < 10:
				gray.SetGray(x, y, colorGray(40))
			case x >= 15:
				gray.SetGray(x, y, colorGray(10))
			}
		}
	}

	edges := cannyDetector{low: 20, high: 80}.detect(gray)
	require.Equal(t, 16, countNonZero(edges))
	for y := 0; y < 8; y++ {
		require.Equal(t, uint8(0), edges.GrayAt(14, y).Y)
		require.Equal(t, uint8(0), edges.GrayAt(15, y).Y)
	}
}

func TestCannyDetector_WeakEdgeJoinsStrong(t *testing.T) {
	// Одна ступенька: сверху сильная (0 -> 40), снизу слабая (0 -> 10).
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			v := uint8(40)
			if y >= 5 {
				v = 10
			}
			gray.SetGray(x, y, colorGray(v))
		}
	}

	edges := cannyDetector{low: 20, high: 80}.detect(gray)
	require.Equal(t, uint8(255), edges.GrayAt(4, 0).Y)
	require.Equal(t, uint8(255), edges.GrayAt(4, 9).Y)
}

func colorGray(v uint8) color.Gray {
	return color.Gray{Y: v}
}
