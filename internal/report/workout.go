// Package report renders analyzed workouts to files and the terminal.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"swimreport/internal/analysis"
	"swimreport/internal/zepp"
)

// Workout is a finished, analyzed workout ready to be written
type Workout struct {
	RunID   string
	Summary zepp.WorkoutSummary
	Start   time.Time // local start time
	Result  *analysis.Result
}

// NewWorkout pairs a summary with its analysis result, placing the start
// time in loc
func NewWorkout(runID string, summary zepp.WorkoutSummary, result *analysis.Result, loc *time.Location) (*Workout, error) {
	start, err := summary.StartTime()
	if err != nil {
		return nil, fmt.Errorf("parsing track id %q: %w", summary.TrackID, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Workout{
		RunID:   runID,
		Summary: summary,
		Start:   start.In(loc),
		Result:  result,
	}, nil
}

// RunTimeSeconds is the elapsed time covered by the samples
func (w *Workout) RunTimeSeconds() int {
	return max(len(w.Result.Samples)-1, 0)
}

// SampleTime returns the wall-clock time of sample i
func (w *Workout) SampleTime(i int) time.Time {
	return w.Start.Add(time.Duration(i) * time.Second)
}

// Writer persists a workout report somewhere
type Writer interface {
	Format() string
	// Write stores the report and returns where it went
	Write(ctx context.Context, w *Workout) (string, error)
}

// FileName returns the report file name for a workout start time
func FileName(start time.Time, ext string) string {
	return start.Format("2006-01-02_15-04-05") + "." + ext
}

// reportPath creates dir if needed and returns the report file path
func reportPath(dir string, w *Workout, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(dir, FileName(w.Start, ext)), nil
}

// FormatClock formats seconds as HH:MM:SS
func FormatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatElapsed formats a sample offset as "XmYs"
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
}

// FormatPercent formats a percentage with two decimals and a % sign
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatFixed formats v with two decimals
func FormatFixed(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatNumber prints v without trailing zeros
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
