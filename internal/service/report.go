// Package service runs report batches over the workout history.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"swimreport/internal/analysis"
	"swimreport/internal/observability"
	"swimreport/internal/report"
	"swimreport/internal/zepp"
)

// Source provides workout summaries and their encoded streams
type Source interface {
	GetHistory(ctx context.Context) ([]zepp.WorkoutSummary, error)
	GetDetail(ctx context.Context, trackID, source string) (*zepp.WorkoutDetail, error)
}

// Options tunes a report run
type Options struct {
	Zones       analysis.HRZones
	Location    *time.Location
	Concurrency int
	RunID       string
}

// Progress phases
const (
	PhaseHistory  = "history"
	PhaseWorkouts = "workouts"
)

// Progress reports progress during a run
type Progress struct {
	Phase     string
	Total     int
	Completed int
	Current   string // track id
}

// WorkoutOutcome is what happened to one swim workout
type WorkoutOutcome struct {
	TrackID string
	Source  string
	Outcome string // observability.Outcome*
	Workout *report.Workout
	Outputs []string
	Err     error
}

// RunResult contains the results of a run, workouts in history order
type RunResult struct {
	Found     int
	Swims     int
	Processed int
	Skipped   int
	Failed    int
	Workouts  []WorkoutOutcome
	Errors    []error
}

// ReportService fetches swim workouts, analyzes them and hands the results
// to every writer
type ReportService struct {
	source  Source
	writers []report.Writer
	opts    Options
	logger  *slog.Logger
}

// NewReportService creates a report service
func NewReportService(source Source, writers []report.Writer, opts Options, logger *slog.Logger) *ReportService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Zones.MaxHR <= 0 {
		opts.Zones = analysis.DefaultZones()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		source:  source,
		writers: writers,
		opts:    opts,
		logger:  logger,
	}
}

// Run processes every swim workout in the history. Only a failed history
// fetch or a canceled context fails the run; per-workout problems are
// recorded in the result.
func (s *ReportService) Run(ctx context.Context, progress chan<- Progress) (*RunResult, error) {
	if progress != nil {
		defer close(progress)
	}

	started := time.Now()
	result := &RunResult{}

	send(ctx, progress, Progress{Phase: PhaseHistory})

	history, err := s.source.GetHistory(ctx)
	if err != nil {
		return result, fmt.Errorf("fetching history: %w", err)
	}
	result.Found = len(history)

	var swims []zepp.WorkoutSummary
	for _, w := range history {
		if w.IsSwimming() {
			swims = append(swims, w)
		}
	}
	result.Swims = len(swims)

	s.logger.Info("history fetched", "workouts", len(history), "swims", len(swims))
	if len(swims) == 0 {
		s.logger.Warn("no swimming workouts found")
		observability.RecordRun(started, time.Now())
		return result, nil
	}

	outcomes := make([]WorkoutOutcome, len(swims))

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, summary := range swims {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = s.processWorkout(gctx, summary)
			if err := gctx.Err(); err != nil {
				return err
			}

			mu.Lock()
			completed++
			p := Progress{Phase: PhaseWorkouts, Total: len(swims), Completed: completed, Current: summary.TrackID.String()}
			mu.Unlock()
			send(gctx, progress, p)
			return nil
		})
	}

	waitErr := g.Wait()

	for _, o := range outcomes {
		if o.Outcome == "" {
			continue // never started
		}
		result.Workouts = append(result.Workouts, o)
		switch o.Outcome {
		case observability.OutcomeProcessed:
			result.Processed++
		case observability.OutcomeSkipped:
			result.Skipped++
		case observability.OutcomeFailed:
			result.Failed++
			result.Errors = append(result.Errors, o.Err)
		}
	}

	observability.RecordRun(started, time.Now())

	if waitErr != nil {
		return result, fmt.Errorf("processing workouts: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	s.logger.Info("run finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", time.Since(started).Round(time.Millisecond),
	)
	return result, nil
}

// processWorkout fetches, analyzes and writes one workout
func (s *ReportService) processWorkout(ctx context.Context, summary zepp.WorkoutSummary) WorkoutOutcome {
	out := WorkoutOutcome{TrackID: summary.TrackID.String(), Source: summary.Source.String()}
	log := s.logger.With("track_id", out.TrackID, "source", out.Source)

	fail := func(err error) WorkoutOutcome {
		out.Outcome = observability.OutcomeFailed
		out.Err = err
		observability.RecordOutcome(out.Outcome)
		log.Error("workout failed", "error", err)
		return out
	}

	detail, err := s.source.GetDetail(ctx, out.TrackID, out.Source)
	if err != nil {
		return fail(err)
	}

	res, err := analysis.Analyze(detail.AnalysisDetail(), summary.AnalysisSummary(), s.opts.Zones)
	if errors.Is(err, analysis.ErrEmptySeries) {
		out.Outcome = observability.OutcomeSkipped
		out.Err = err
		observability.RecordOutcome(out.Outcome)
		log.Warn("skipping workout", "reason", err)
		return out
	}
	if err != nil {
		return fail(fmt.Errorf("analyzing %s: %w", out.TrackID, err))
	}
	observability.RecordSamples(len(res.Samples))

	if log.Enabled(ctx, slog.LevelDebug) {
		for _, smp := range res.Samples {
			log.Debug("sample",
				"offset", smp.Offset,
				"time", smp.Time,
				"hr_variation", smp.HRVariation,
				"hr", smp.HeartRate,
				"pace", smp.Pace,
			)
		}
	}

	w, err := report.NewWorkout(s.opts.RunID, summary, res, s.opts.Location)
	if err != nil {
		return fail(err)
	}
	out.Workout = w

	var writeErrs []error
	for _, wr := range s.writers {
		path, err := wr.Write(ctx, w)
		observability.RecordWrite(wr.Format(), err)
		if err != nil {
			writeErrs = append(writeErrs, fmt.Errorf("writing %s report for %s: %w", wr.Format(), out.TrackID, err))
			continue
		}
		out.Outputs = append(out.Outputs, path)
	}
	if len(writeErrs) > 0 {
		return fail(errors.Join(writeErrs...))
	}

	out.Outcome = observability.OutcomeProcessed
	observability.RecordOutcome(out.Outcome)
	log.Info("workout processed",
		"start", w.Start.Format(time.DateTime),
		"distance_m", res.Metrics.TotalDistance,
		"samples", len(res.Samples),
		"outputs", out.Outputs,
	)
	return out
}

func send(ctx context.Context, progress chan<- Progress, p Progress) {
	if progress == nil {
		return
	}
	select {
	case progress <- p:
	case <-ctx.Done():
	}
}
