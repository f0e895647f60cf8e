package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
	"corrosion-monitor/internal/infrastructure/storage"
	"corrosion-monitor/internal/infrastructure/vision"
	"corrosion-monitor/internal/testutil"
)

// sliceSource отдаёт кадры по порядку, затем tailErr (или io.EOF).
type sliceSource struct {
	frames  []entity.Frame
	tailErr error
	next    int
	closed  bool
}

func (s *sliceSource) Next(ctx context.Context) (entity.Frame, error) {
	if s.next >= len(s.frames) {
		if s.tailErr != nil {
			return entity.Frame{}, s.tailErr
		}
		return entity.Frame{}, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// flakySink падает на вызовах из failOn и запоминает остальные.
type flakySink struct {
	calls   int
	failOn  map[int]bool
	records []entity.ClassificationResult
}

func (s *flakySink) Append(ctx context.Context, result entity.ClassificationResult) error {
	s.calls++
	if s.failOn[s.calls] {
		return entity.ErrSinkUnavailable
	}
	s.records = append(s.records, result)
	return nil
}

type recordingRenderer struct {
	rendered int
	err      error
	stopAt   int
}

func (r *recordingRenderer) Render(frame entity.Frame, analysis *entity.FrameAnalysis) error {
	r.rendered++
	return r.err
}

func (r *recordingRenderer) Close() error { return nil }

func (r *recordingRenderer) StopRequested() bool {
	return r.stopAt > 0 && r.rendered >= r.stopAt
}

func newService(sink port.ResultSink, renderer port.Renderer, logger *zap.SugaredLogger) *CorrosionService {
	th := vision.DefaultThresholds()
	return NewCorrosionService(
		vision.NewMetalClassifier(th),
		vision.NewRustSegmenter(th),
		vision.NewSeverityClassifier(th),
		sink,
		nil,
		renderer,
		logger,
	)
}

func TestCorrosionService_WhiteFrameIsNotCorroded(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)

	analysis, err := svc.Analyze(testutil.Fill(64, 48, testutil.White))
	require.NoError(t, err)

	r := analysis.Result
	require.NoError(t, r.Validate())
	require.Equal(t, entity.MaterialMetal, r.Material)
	require.Equal(t, entity.CorrosionNotCorroded, r.CorrosionStatus)
	require.Equal(t, entity.PercentOf(0), r.RustRatioPercent)
	require.False(t, r.EdgeDensityPercent.Valid)
	require.Equal(t, entity.SeverityNotApplicable, r.Severity)
	require.Equal(t, testutil.CapturedAt, r.Timestamp)
	require.NotNil(t, analysis.RustMask)
	require.Nil(t, analysis.Edges)
	require.Equal(t, []entity.PipelineState{
		entity.StateStart, entity.StateMetalCheck, entity.StateRustCheck, entity.StateNotCorroded,
	}, analysis.Trace)
}

func TestCorrosionService_HalfRustFlatIsLow(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)

	analysis, err := svc.Analyze(testutil.Split(400, 100, testutil.Rust, testutil.Gray))
	require.NoError(t, err)

	r := analysis.Result
	require.NoError(t, r.Validate())
	require.Equal(t, entity.MaterialMetal, r.Material)
	require.Equal(t, entity.CorrosionCorroded, r.CorrosionStatus)
	require.InDelta(t, 50.0, r.RustRatioPercent.Value, 1e-9)
	require.Less(t, r.EdgeDensityPercent.Value, 1.0)
	require.Equal(t, entity.SeverityLow, r.Severity)
	require.NotNil(t, analysis.Edges)
	require.Equal(t, entity.StateCorroded, analysis.Trace[len(analysis.Trace)-1])
}

func TestCorrosionService_HalfRustCheckerboardIsHigh(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)

	frame := testutil.CheckerSplit(400, 100, 4, testutil.Rust, testutil.DarkRust, testutil.Gray)
	analysis, err := svc.Analyze(frame)
	require.NoError(t, err)

	r := analysis.Result
	require.NoError(t, r.Validate())
	require.Equal(t, entity.MaterialMetal, r.Material)
	require.Equal(t, entity.CorrosionCorroded, r.CorrosionStatus)
	require.InDelta(t, 50.0, r.RustRatioPercent.Value, 1e-9)
	require.Equal(t, entity.SeverityHigh, r.Severity)
}

func TestCorrosionService_NonMetal(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)

	analysis, err := svc.Analyze(testutil.Fill(32, 32, testutil.DarkRust))
	require.NoError(t, err)

	r := analysis.Result
	require.NoError(t, r.Validate())
	require.Equal(t, entity.NewNonMetalResult(testutil.CapturedAt), r)
	require.Nil(t, analysis.RustMask)
	require.Equal(t, []entity.PipelineState{
		entity.StateStart, entity.StateMetalCheck, entity.StateNonMetal,
	}, analysis.Trace)
}

func TestCorrosionService_AnalyzeIsIdempotent(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)
	frame := testutil.CheckerSplit(120, 60, 4, testutil.Rust, testutil.DarkRust, testutil.Gray)

	first, err := svc.Analyze(frame)
	require.NoError(t, err)
	second, err := svc.Analyze(frame)
	require.NoError(t, err)

	require.True(t, first.Result == second.Result)
	require.Equal(t, first.Edges.Pix, second.Edges.Pix)
	require.Equal(t, first.RustMask.Pix, second.RustMask.Pix)
}

func TestCorrosionService_EmptyFrameIsInvalid(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)

	_, err := svc.Analyze(testutil.Fill(0, 0, testutil.White))
	require.ErrorIs(t, err, entity.ErrInvalidFrame)
}

func TestCorrosionService_ProcessFrameAlwaysRecords(t *testing.T) {
	sink := storage.NewMemoryResultSink()
	renderer := &recordingRenderer{}
	svc := newService(sink, renderer, nil)
	ctx := context.Background()

	frames := []entity.Frame{
		testutil.Fill(32, 32, testutil.DarkRust),
		testutil.Fill(32, 32, testutil.White),
		testutil.Fill(32, 32, testutil.White),
		testutil.Split(400, 100, testutil.Rust, testutil.Gray),
	}
	for _, f := range frames {
		report, err := svc.ProcessFrame(ctx, f)
		require.NoError(t, err)
		require.NoError(t, report.SinkErr)
	}

	records := sink.Records()
	require.Len(t, records, 4)
	require.Equal(t, entity.CorrosionNotApplicable, records[0].CorrosionStatus)
	require.Equal(t, entity.CorrosionNotCorroded, records[1].CorrosionStatus)
	require.Equal(t, records[1], records[2])
	require.Equal(t, entity.CorrosionCorroded, records[3].CorrosionStatus)
	require.Equal(t, 4, renderer.rendered)
}

func TestCorrosionService_RenderFailureIsIgnored(t *testing.T) {
	sink := storage.NewMemoryResultSink()
	renderer := &recordingRenderer{err: errors.New("no display")}
	svc := newService(sink, renderer, nil)

	report, err := svc.ProcessFrame(context.Background(), testutil.Fill(16, 16, testutil.White))
	require.NoError(t, err)
	require.Error(t, report.RenderErr)
	require.Equal(t, 1, sink.Len())
}

func TestCorrosionService_RunSurvivesSinkFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := &flakySink{failOn: map[int]bool{1: true}}
	svc := newService(sink, nil, zap.New(core).Sugar())

	source := &sliceSource{frames: []entity.Frame{
		testutil.Fill(16, 16, testutil.White),
		testutil.Fill(16, 16, testutil.White),
		testutil.Fill(16, 16, testutil.DarkRust),
	}}

	stats, err := svc.Run(context.Background(), source, nil)
	require.NoError(t, err)
	require.True(t, source.closed)
	require.Equal(t, 3, sink.calls)
	require.Len(t, sink.records, 2)
	require.Equal(t, Stats{Frames: 3, NonMetal: 1, NotCorroded: 2, SinkFailures: 1}, stats)

	warnings := logs.FilterMessage("result not recorded").All()
	require.Len(t, warnings, 1)
	require.Equal(t, zapcore.WarnLevel, warnings[0].Level)
}

func TestCorrosionService_RunCaptureFailure(t *testing.T) {
	sink := storage.NewMemoryResultSink()
	svc := newService(sink, nil, nil)

	source := &sliceSource{
		frames:  []entity.Frame{testutil.Fill(16, 16, testutil.White)},
		tailErr: entity.ErrCaptureFailed,
	}

	stats, err := svc.Run(context.Background(), source, nil)
	require.ErrorIs(t, err, entity.ErrCaptureFailed)
	require.Equal(t, 1, stats.Frames)
	require.Equal(t, 1, sink.Len())
	require.True(t, source.closed)
}

func TestCorrosionService_RunInvalidFrameIsFatal(t *testing.T) {
	svc := newService(storage.NewMemoryResultSink(), nil, nil)
	source := &sliceSource{frames: []entity.Frame{testutil.Fill(0, 0, testutil.White)}}

	_, err := svc.Run(context.Background(), source, nil)
	require.ErrorIs(t, err, entity.ErrInvalidFrame)
	require.True(t, source.closed)
}

func TestCorrosionService_RunStopSignal(t *testing.T) {
	sink := storage.NewMemoryResultSink()
	renderer := &recordingRenderer{stopAt: 2}
	svc := newService(sink, renderer, nil)

	frames := make([]entity.Frame, 5)
	for i := range frames {
		frames[i] = testutil.Fill(8, 8, testutil.White)
	}
	source := &sliceSource{frames: frames}

	stats, err := svc.Run(context.Background(), source, renderer)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Frames)
	require.Equal(t, 2, sink.Len())
	require.True(t, source.closed)
}

func TestCorrosionService_RunCancelledContext(t *testing.T) {
	sink := storage.NewMemoryResultSink()
	svc := newService(sink, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &sliceSource{frames: []entity.Frame{testutil.Fill(8, 8, testutil.White)}}
	stats, err := svc.Run(ctx, source, nil)
	require.NoError(t, err)
	require.Zero(t, stats.Frames)
	require.Zero(t, sink.Len())
	require.True(t, source.closed)
}

// failingAlerter не может доставить ни одного оповещения.
type failingAlerter struct {
	calls int
}

func (a *failingAlerter) Alert(ctx context.Context, result entity.ClassificationResult) error {
	a.calls++
	return entity.ErrAlertUnavailable
}

func TestCorrosionService_AlertFailureIsNotSinkFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := storage.NewMemoryResultSink()
	alerter := &failingAlerter{}
	th := vision.DefaultThresholds()
	svc := NewCorrosionService(
		vision.NewMetalClassifier(th),
		vision.NewRustSegmenter(th),
		vision.NewSeverityClassifier(th),
		sink,
		alerter,
		nil,
		zap.New(core).Sugar(),
	)

	source := &sliceSource{frames: []entity.Frame{
		testutil.Split(400, 100, testutil.Rust, testutil.Gray),
		testutil.Fill(16, 16, testutil.White),
	}}

	stats, err := svc.Run(context.Background(), source, nil)
	require.NoError(t, err)
	require.Equal(t, 2, alerter.calls)
	require.Equal(t, 2, sink.Len())
	require.Zero(t, stats.SinkFailures)
	require.Equal(t, 2, stats.AlertFailures)
	require.Equal(t, 1, stats.Corroded)

	require.Empty(t, logs.FilterMessage("result not recorded").All())
	require.Len(t, logs.FilterMessage("alert not sent").All(), 2)
}
