package store

import (
	"context"
	"database/sql"
	"fmt"

	"swimreport/internal/analysis"
)

// saveSamples replaces the stored series of a workout inside tx
func saveSamples(ctx context.Context, tx *sql.Tx, trackID, source string, samples []analysis.Sample) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM workout_samples WHERE track_id = ? AND source = ?", trackID, source); err != nil {
		return fmt.Errorf("deleting existing samples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO workout_samples (
			track_id, source, time_offset, raw_time, hr_variation, heartrate, pace
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		_, err := stmt.ExecContext(ctx, trackID, source, s.Offset, s.Time, s.HRVariation, s.HeartRate, s.Pace)
		if err != nil {
			return fmt.Errorf("inserting sample %d: %w", s.Offset, err)
		}
	}

	return nil
}

// GetSamples retrieves the stored series of a workout in time order
func (db *DB) GetSamples(ctx context.Context, trackID, source string) ([]analysis.Sample, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT time_offset, raw_time, hr_variation, heartrate, pace
		FROM workout_samples
		WHERE track_id = ? AND source = ?
		ORDER BY time_offset
	`, trackID, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []analysis.Sample
	for rows.Next() {
		var s analysis.Sample
		if err := rows.Scan(&s.Offset, &s.Time, &s.HRVariation, &s.HeartRate, &s.Pace); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}
