package service

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Stage string

const (
	StageLoad      Stage = "load"
	StageFit       Stage = "fit"
	StageSummarize Stage = "summarize"
	StageCompare   Stage = "compare"
	StagePlot      Stage = "plot"
)

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type AnalysisOpts struct {
	Sample  domain.SampleOpts
	HDIProb float64
}

func DefaultAnalysisOpts() AnalysisOpts {
	return AnalysisOpts{
		Sample:  domain.DefaultSampleOpts(),
		HDIProb: DefaultHDIProb,
	}
}

// AnalysisService runs load, fit, summarize and compare in sequence.
type AnalysisService struct {
	store   domain.ResponseStore
	sampler domain.Sampler
	plots   domain.PlotRenderer
	logger  *zap.Logger
}

// NewAnalysisService wires the pipeline. plots may be nil to skip rendering.
func NewAnalysisService(store domain.ResponseStore, sampler domain.Sampler, plots domain.PlotRenderer, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		store:   store,
		sampler: sampler,
		plots:   plots,
		logger:  logger,
	}
}

// Run analyses the response file at path. The returned trace is shared
// read-only with the report's consumers.
func (s *AnalysisService) Run(ctx context.Context, path string, opts AnalysisOpts) (*domain.Report, *domain.Trace, error) {
	runID := uuid.New()
	logger := s.logger.With(zap.String("run_id", runID.String()))

	data, err := s.store.Load(ctx, path)
	if err != nil {
		return nil, nil, &StageError{Stage: StageLoad, Err: err}
	}
	n, m := data.Dims()
	logger.Info("loaded responses",
		zap.String("path", path),
		zap.Int("informants", n),
		zap.Int("items", m))

	trace, err := s.sampler.Sample(ctx, data, opts.Sample)
	if err != nil {
		return nil, nil, &StageError{Stage: StageFit, Err: err}
	}

	summary, err := Summarize(data, trace, opts.HDIProb)
	if err != nil {
		return nil, nil, &StageError{Stage: StageSummarize, Err: err}
	}
	warnDiagnostics(logger, summary)

	comparison, err := Compare(data, trace)
	if err != nil {
		return nil, nil, &StageError{Stage: StageCompare, Err: err}
	}
	logger.Info("compared with majority vote",
		zap.Float64("match_percent", comparison.MatchPercent),
		zap.Strings("disagreements", comparison.Disagreements))

	chains, draws, _, _ := trace.Dims()
	report := &domain.Report{
		RunID:       runID,
		DataPath:    path,
		Informants:  n,
		Items:       m,
		Chains:      chains,
		Draws:       draws,
		Tune:        trace.Tune,
		Seed:        trace.Seed,
		FitDuration: trace.Duration,
		Summary:     summary,
		Comparison:  comparison,
	}

	if s.plots != nil {
		paths, err := s.plots.Render(report, trace)
		if err != nil {
			return nil, nil, &StageError{Stage: StagePlot, Err: err}
		}
		report.PlotPaths = paths
		logger.Info("rendered plots", zap.Strings("paths", paths))
	}

	return report, trace, nil
}

// rHatWarnLimit follows the common 1.01 convergence guideline.
const rHatWarnLimit = 1.01

func warnDiagnostics(logger *zap.Logger, summary domain.Summary) {
	for _, row := range summary.Rows {
		if r := float64(row.RHat); r > rHatWarnLimit {
			logger.Warn("chains may not have mixed",
				zap.String("variable", row.Name),
				zap.Float64("r_hat", r))
		}
	}
}
