package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"swimreport/internal/analysis"
	"swimreport/internal/report"
)

// WorkoutRecord is a ledger entry for one written report
type WorkoutRecord struct {
	TrackID      string
	Source       string
	RunID        string
	Start        time.Time
	PoolLength   float64
	Laps         float64
	Calories     string
	ExerciseLoad string
	AvgHeartRate string
	Swolf        string
	TotalStrokes string
	SwimStyle    string
	Metrics      analysis.ComputedMetrics
	SampleCount  int
}

// SaveWorkout inserts or updates a workout with its metrics, zones and samples.
// A workout is keyed by (track id, source); saving it again replaces everything.
func (db *DB) SaveWorkout(ctx context.Context, w *report.Workout) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	s := w.Summary
	trackID, source := s.TrackID.String(), s.Source.String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workouts (
			track_id, source, run_id, start_time, pool_length, laps, calories,
			exercise_load, avg_heart_rate, swolf, total_strokes, swim_style, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(track_id, source) DO UPDATE SET
			run_id = excluded.run_id,
			start_time = excluded.start_time,
			pool_length = excluded.pool_length,
			laps = excluded.laps,
			calories = excluded.calories,
			exercise_load = excluded.exercise_load,
			avg_heart_rate = excluded.avg_heart_rate,
			swolf = excluded.swolf,
			total_strokes = excluded.total_strokes,
			swim_style = excluded.swim_style,
			updated_at = CURRENT_TIMESTAMP
	`,
		trackID, source, w.RunID, w.Start.Format(time.RFC3339),
		s.SwimPoolLength.FloatOr(0), s.TotalTrips.FloatOr(0), s.Calorie.String(),
		s.ExerciseLoad.String(), s.AvgHeartRate.String(), s.Swolf.String(),
		s.TotalStrokes.String(), s.SwimStyle.String(),
	)
	if err != nil {
		return fmt.Errorf("upserting workout: %w", err)
	}

	m := w.Result.Metrics
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO workout_metrics (
			track_id, source, total_distance, average_pace, percentage_moving,
			percentage_idle, hr_max, hr_min, hr_start, hr_end, hr_variance,
			avg_effort_duration, avg_rest_duration
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trackID, source, m.TotalDistance, m.AveragePace, m.PercentageMoving,
		m.PercentageIdle, m.HRMax, m.HRMin, m.HRStart, m.HREnd, m.HRVariance,
		m.AvgEffortDuration, m.AvgRestDuration,
	)
	if err != nil {
		return fmt.Errorf("saving metrics: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM workout_zones WHERE track_id = ? AND source = ?", trackID, source); err != nil {
		return fmt.Errorf("deleting existing zones: %w", err)
	}
	for i, z := range m.ZonePercentages {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO workout_zones (track_id, source, position, label, percent) VALUES (?, ?, ?, ?, ?)",
			trackID, source, i, z.Label, z.Percent)
		if err != nil {
			return fmt.Errorf("inserting zone %s: %w", z.Label, err)
		}
	}

	if err := saveSamples(ctx, tx, trackID, source, w.Result.Samples); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Format implements report.Writer
func (db *DB) Format() string { return "sqlite" }

// Write implements report.Writer
func (db *DB) Write(ctx context.Context, w *report.Workout) (string, error) {
	if err := db.SaveWorkout(ctx, w); err != nil {
		return "", err
	}
	return db.path, nil
}

const workoutColumns = `
	w.track_id, w.source, w.run_id, w.start_time, w.pool_length, w.laps,
	w.calories, w.exercise_load, w.avg_heart_rate, w.swolf, w.total_strokes, w.swim_style,
	m.total_distance, m.average_pace, m.percentage_moving, m.percentage_idle,
	m.hr_max, m.hr_min, m.hr_start, m.hr_end, m.hr_variance,
	m.avg_effort_duration, m.avg_rest_duration,
	(SELECT COUNT(*) FROM workout_samples s WHERE s.track_id = w.track_id AND s.source = w.source)
`

// GetWorkout retrieves a workout with its zone distribution
func (db *DB) GetWorkout(ctx context.Context, trackID, source string) (*WorkoutRecord, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts w
		JOIN workout_metrics m ON m.track_id = w.track_id AND m.source = w.source
		WHERE w.track_id = ? AND w.source = ?
	`, trackID, source)

	rec, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	zones, err := db.getZones(ctx, trackID, source)
	if err != nil {
		return nil, err
	}
	rec.Metrics.ZonePercentages = zones

	return rec, nil
}

// ListWorkouts returns workouts ordered by start time, newest first.
// Zone distributions are not loaded.
func (db *DB) ListWorkouts(ctx context.Context, limit int) ([]WorkoutRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts w
		JOIN workout_metrics m ON m.track_id = w.track_id AND m.source = w.source
		ORDER BY w.start_time DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []WorkoutRecord
	for rows.Next() {
		rec, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func (db *DB) getZones(ctx context.Context, trackID, source string) ([]analysis.ZoneShare, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT label, percent FROM workout_zones
		WHERE track_id = ? AND source = ?
		ORDER BY position
	`, trackID, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []analysis.ZoneShare
	for rows.Next() {
		var z analysis.ZoneShare
		if err := rows.Scan(&z.Label, &z.Percent); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	return zones, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(s scanner) (*WorkoutRecord, error) {
	var rec WorkoutRecord
	var start string
	var poolLength, laps sql.NullFloat64
	var calories, load, avgHR, swolf, strokes, style sql.NullString

	m := &rec.Metrics
	err := s.Scan(
		&rec.TrackID, &rec.Source, &rec.RunID, &start, &poolLength, &laps,
		&calories, &load, &avgHR, &swolf, &strokes, &style,
		&m.TotalDistance, &m.AveragePace, &m.PercentageMoving, &m.PercentageIdle,
		&m.HRMax, &m.HRMin, &m.HRStart, &m.HREnd, &m.HRVariance,
		&m.AvgEffortDuration, &m.AvgRestDuration,
		&rec.SampleCount,
	)
	if err != nil {
		return nil, err
	}

	rec.Start, err = time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, fmt.Errorf("parsing start time %q: %w", start, err)
	}
	rec.PoolLength = poolLength.Float64
	rec.Laps = laps.Float64
	rec.Calories = calories.String
	rec.ExerciseLoad = load.String
	rec.AvgHeartRate = avgHR.String
	rec.Swolf = swolf.String
	rec.TotalStrokes = strokes.String
	rec.SwimStyle = style.String

	return &rec, nil
}
