package camera

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// DirSource конечный источник кадров из файлов каталога.
// Файлы читаются по одному в лексическом порядке имён.
type DirSource struct {
	paths []string
	next  int
}

// OpenDir находит изображения в каталоге.
func OpenDir(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %w", entity.ErrCaptureUnavailable, dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", entity.ErrCaptureUnavailable, dir)
	}
	sort.Strings(paths)

	return &DirSource{paths: paths}, nil
}

// Next декодирует следующий файл; после последнего возвращает io.EOF.
func (s *DirSource) Next(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}
	if s.next >= len(s.paths) {
		return entity.Frame{}, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	info, err := os.Stat(path)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("%w: stat %s: %w", entity.ErrCaptureFailed, path, err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("%w: decode %s: %w", entity.ErrCaptureFailed, path, err)
	}

	return entity.NewFrame(imaging.Clone(img), info.ModTime()), nil
}

// Close ничего не держит открытым
func (s *DirSource) Close() error {
	return nil
}

var _ port.FrameSource = (*DirSource)(nil)
