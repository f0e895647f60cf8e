package container

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"corrosion-monitor/config"
	telegram "corrosion-monitor/internal/api"
	app "corrosion-monitor/internal/application"
	"corrosion-monitor/internal/domain/port"
	"corrosion-monitor/internal/infrastructure/camera"
	"corrosion-monitor/internal/infrastructure/display"
	"corrosion-monitor/internal/infrastructure/sheets"
	"corrosion-monitor/internal/infrastructure/storage"
	"corrosion-monitor/internal/infrastructure/vision"
)

type Container struct {
	CorrosionService *app.CorrosionService
	Renderer         display.Renderer
	Memory           *storage.MemoryResultSink // только при DryRun

	closers []func() error
}

// New собирает получателей записей, отрисовщик и сервис классификации.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Container, error) {
	c := &Container{}
	var sinks []port.ResultSink

	if cfg.SpreadsheetID != "" {
		sheet, err := sheets.New(ctx,
			sheets.Config{SpreadsheetID: cfg.SpreadsheetID, Range: cfg.SheetRange},
			option.WithCredentialsFile(cfg.CredentialsFile),
		)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sheet)
		logger.Infow("google sheets sink enabled", "spreadsheet", cfg.SpreadsheetID, "range", cfg.SheetRange)
	}

	if cfg.SQLitePath != "" {
		db, err := storage.OpenSQLiteResultSink(cfg.SQLitePath)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.closers = append(c.closers, db.Close)
		sinks = append(sinks, db)
		logger.Infow("sqlite sink enabled", "path", cfg.SQLitePath)
	}

	if cfg.DryRun {
		c.Memory = storage.NewMemoryResultSink()
		sinks = append(sinks, c.Memory)
		logger.Info("dry run: records kept in memory")
	}

	if len(sinks) == 0 {
		c.Close()
		return nil, fmt.Errorf("no result sink configured")
	}

	// Оповещения идут мимо получателей записей: сбой Telegram не считается потерей записи.
	var alerter port.Alerter
	if cfg.TelegramToken != "" {
		notifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			c.Close()
			return nil, err
		}
		alerter = notifier
		logger.Infow("telegram alerts enabled", "chat_id", cfg.TelegramChatID)
	}

	c.Renderer = display.New(cfg.Headless)
	c.closers = append(c.closers, c.Renderer.Close)

	th := vision.DefaultThresholds()
	c.CorrosionService = app.NewCorrosionService(
		vision.NewMetalClassifier(th),
		vision.NewRustSegmenter(th),
		vision.NewSeverityClassifier(th),
		storage.NewFanOutSink(sinks...),
		alerter,
		c.Renderer,
		logger.Named("pipeline"),
	)

	return c, nil
}

// OpenSource открывает каталог с кадрами или камеру.
func OpenSource(cfg *config.Config) (port.FrameSource, error) {
	if cfg.FramesDir != "" {
		return camera.OpenDir(cfg.FramesDir)
	}
	return camera.Open(cfg.CameraDevice)
}

// Run открывает источник кадров и крутит цикл до конца. Контейнер закрывается
// при любом исходе, ошибки закрытия добавляются к ошибке цикла.
func (c *Container) Run(ctx context.Context, cfg *config.Config) (stats app.Stats, err error) {
	defer multierr.AppendInvoke(&err, multierr.Invoke(c.Close))

	source, err := OpenSource(cfg)
	if err != nil {
		return stats, err
	}
	return c.CorrosionService.Run(ctx, source, c.Renderer)
}

// Close освобождает окна и базы
func (c *Container) Close() error {
	var errs error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, c.closers[i]())
	}
	c.closers = nil
	return errs
}
