package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// CorrosionService прогоняет кадры через классификаторы и раздаёт результат
// отрисовщику и получателю записей. Между кадрами ничего не хранит.
type CorrosionService struct {
	metal    port.MetalClassifier
	rust     port.RustSegmenter
	severity port.SeverityClassifier
	sink     port.ResultSink
	alerter  port.Alerter
	renderer port.Renderer
	logger   *zap.SugaredLogger
}

// FrameReport итог обработки одного кадра.
type FrameReport struct {
	Analysis  *entity.FrameAnalysis
	SinkErr   error // запись не сохранена
	AlertErr  error // оповещение не ушло, запись при этом могла сохраниться
	RenderErr error // кадр не показан
}

// Stats счётчики за один запуск цикла.
type Stats struct {
	Frames         int
	NonMetal       int
	NotCorroded    int
	Corroded       int
	SinkFailures   int
	AlertFailures  int
	RenderFailures int
}

func (s *Stats) add(report *FrameReport) {
	s.Frames++
	switch report.Analysis.Result.CorrosionStatus {
	case entity.CorrosionNotApplicable:
		s.NonMetal++
	case entity.CorrosionNotCorroded:
		s.NotCorroded++
	case entity.CorrosionCorroded:
		s.Corroded++
	}
	if report.SinkErr != nil {
		s.SinkFailures++
	}
	if report.AlertErr != nil {
		s.AlertFailures++
	}
	if report.RenderErr != nil {
		s.RenderFailures++
	}
}

// NewCorrosionService создаёт сервис. alerter и renderer могут быть nil.
func NewCorrosionService(
	metal port.MetalClassifier,
	rust port.RustSegmenter,
	severity port.SeverityClassifier,
	sink port.ResultSink,
	alerter port.Alerter,
	renderer port.Renderer,
	logger *zap.SugaredLogger,
) *CorrosionService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CorrosionService{
		metal:    metal,
		rust:     rust,
		severity: severity,
		sink:     sink,
		alerter:  alerter,
		renderer: renderer,
		logger:   logger,
	}
}

// frameRun данные одного прохода по кадру.
type frameRun struct {
	frame    entity.Frame
	analysis *entity.FrameAnalysis
	rust     *entity.RustSegmentation
}

// Analyze классифицирует кадр. Результат зависит только от кадра.
func (s *CorrosionService) Analyze(frame entity.Frame) (*entity.FrameAnalysis, error) {
	run := &frameRun{frame: frame, analysis: &entity.FrameAnalysis{}}

	state := entity.StateStart
	for !state.Terminal() {
		run.analysis.Trace = append(run.analysis.Trace, state)
		next, err := s.step(state, run)
		if err != nil {
			return nil, err
		}
		state = next
	}
	run.analysis.Trace = append(run.analysis.Trace, state)

	return run.analysis, nil
}

func (s *CorrosionService) step(state entity.PipelineState, run *frameRun) (entity.PipelineState, error) {
	switch state {
	case entity.StateStart:
		return s.start(run)
	case entity.StateMetalCheck:
		return s.checkMetal(run), nil
	case entity.StateRustCheck:
		return s.checkRust(run)
	case entity.StateSeverityCheck:
		return s.gradeSeverity(run)
	default:
		return "", fmt.Errorf("unexpected pipeline state %q", state)
	}
}

func (s *CorrosionService) start(run *frameRun) (entity.PipelineState, error) {
	if run.frame.Empty() {
		return "", fmt.Errorf("analyze frame: %w: %dx%d", entity.ErrInvalidFrame, run.frame.Width(), run.frame.Height())
	}
	return entity.StateMetalCheck, nil
}

func (s *CorrosionService) checkMetal(run *frameRun) entity.PipelineState {
	if !s.metal.IsMetal(run.frame) {
		run.analysis.Result = entity.NewNonMetalResult(run.frame.Timestamp())
		return entity.StateNonMetal
	}
	return entity.StateRustCheck
}

func (s *CorrosionService) checkRust(run *frameRun) (entity.PipelineState, error) {
	seg, err := s.rust.Segment(run.frame)
	if err != nil {
		return "", err
	}
	run.rust = seg
	run.analysis.RustMask = seg.Mask

	if !s.rust.IsCorroded(seg.RatioPercent) {
		run.analysis.Result = entity.NewNotCorrodedResult(run.frame.Timestamp(), seg.RatioPercent)
		return entity.StateNotCorroded, nil
	}
	return entity.StateSeverityCheck, nil
}

func (s *CorrosionService) gradeSeverity(run *frameRun) (entity.PipelineState, error) {
	grade, err := s.severity.Classify(run.frame, run.rust.PixelCount)
	if err != nil {
		return "", err
	}
	run.analysis.Edges = grade.Edges
	run.analysis.Result = entity.NewCorrodedResult(
		run.frame.Timestamp(),
		run.rust.RatioPercent,
		grade.Severity,
		grade.EdgeDensityPercent,
	)
	return entity.StateCorroded, nil
}

// ProcessFrame классифицирует кадр, показывает его, отправляет запись и оповещение.
// Ошибки отрисовщика, получателя и оповещателя не прерывают обработку.
func (s *CorrosionService) ProcessFrame(ctx context.Context, frame entity.Frame) (*FrameReport, error) {
	analysis, err := s.Analyze(frame)
	if err != nil {
		return nil, err
	}
	report := &FrameReport{Analysis: analysis}
	result := analysis.Result

	s.logger.Debugw("frame classified",
		"material", result.Material,
		"status", result.CorrosionStatus,
		"severity", result.Severity,
		"rust_ratio", result.RustRatioPercent.String(),
		"edge_density", result.EdgeDensityPercent.String(),
	)

	if s.renderer != nil {
		if err := s.renderer.Render(frame, analysis); err != nil {
			report.RenderErr = err
			s.logger.Warnw("render failed", "error", err)
		}
	}

	if err := s.sink.Append(ctx, result); err != nil {
		report.SinkErr = err
		s.logger.Warnw("result not recorded", "status", result.CorrosionStatus, "error", err)
	}

	if s.alerter != nil {
		if err := s.alerter.Alert(ctx, result); err != nil {
			report.AlertErr = err
			s.logger.Warnw("alert not sent", "status", result.CorrosionStatus, "error", err)
		}
	}

	return report, nil
}

// Run тянет кадры из source, пока не придёт сигнал остановки, не отменится ctx
// или источник не закончится. Источник закрывается при выходе.
func (s *CorrosionService) Run(ctx context.Context, source port.FrameSource, stop port.StopSignal) (Stats, error) {
	var stats Stats
	defer func() {
		if err := source.Close(); err != nil {
			s.logger.Warnw("close frame source", "error", err)
		}
		s.logger.Infow("capture loop finished",
			"frames", stats.Frames,
			"non_metal", stats.NonMetal,
			"not_corroded", stats.NotCorroded,
			"corroded", stats.Corroded,
			"sink_failures", stats.SinkFailures,
			"alert_failures", stats.AlertFailures,
		)
	}()

	for {
		if ctx.Err() != nil {
			return stats, nil
		}
		if stop != nil && stop.StopRequested() {
			s.logger.Info("stop requested")
			return stats, nil
		}

		frame, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return stats, nil
			}
			return stats, fmt.Errorf("next frame: %w", err)
		}

		report, err := s.ProcessFrame(ctx, frame)
		if err != nil {
			return stats, fmt.Errorf("process frame: %w", err)
		}
		stats.add(report)
	}
}
