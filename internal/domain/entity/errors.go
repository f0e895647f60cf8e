package entity

import "errors"

var (
	// ErrCaptureUnavailable камеру не удалось открыть
	ErrCaptureUnavailable = errors.New("capture unavailable")
	// ErrCaptureFailed кадр не удалось прочитать во время работы
	ErrCaptureFailed = errors.New("capture failed")
	// ErrInvalidFrame кадр нулевой площади
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrSinkUnavailable результат не удалось записать
	ErrSinkUnavailable = errors.New("sink unavailable")
	// ErrAlertUnavailable оповещение не доставлено
	ErrAlertUnavailable = errors.New("alert unavailable")
)
