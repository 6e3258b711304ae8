package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Workouts (one row per written report)
		`CREATE TABLE IF NOT EXISTS workouts (
			track_id TEXT NOT NULL,
			source TEXT NOT NULL,
			run_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			pool_length REAL,
			laps REAL,
			calories TEXT,
			exercise_load TEXT,
			avg_heart_rate TEXT,
			swolf TEXT,
			total_strokes TEXT,
			swim_style TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (track_id, source)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_start ON workouts(start_time)`,

		// Computed metrics (per workout)
		`CREATE TABLE IF NOT EXISTS workout_metrics (
			track_id TEXT NOT NULL,
			source TEXT NOT NULL,
			total_distance REAL NOT NULL,
			average_pace REAL NOT NULL,
			percentage_moving REAL NOT NULL,
			percentage_idle REAL NOT NULL,
			hr_max REAL NOT NULL,
			hr_min REAL NOT NULL,
			hr_start REAL NOT NULL,
			hr_end REAL NOT NULL,
			hr_variance REAL NOT NULL,
			avg_effort_duration REAL NOT NULL,
			avg_rest_duration REAL NOT NULL,
			PRIMARY KEY (track_id, source),
			FOREIGN KEY (track_id, source) REFERENCES workouts(track_id, source) ON DELETE CASCADE
		)`,

		// Zone distribution, in zone order
		`CREATE TABLE IF NOT EXISTS workout_zones (
			track_id TEXT NOT NULL,
			source TEXT NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			percent REAL NOT NULL,
			PRIMARY KEY (track_id, source, position),
			FOREIGN KEY (track_id, source) REFERENCES workouts(track_id, source) ON DELETE CASCADE
		)`,

		// Aligned per-second series
		`CREATE TABLE IF NOT EXISTS workout_samples (
			track_id TEXT NOT NULL,
			source TEXT NOT NULL,
			time_offset INTEGER NOT NULL,
			raw_time TEXT NOT NULL,
			hr_variation INTEGER NOT NULL,
			heartrate REAL NOT NULL,
			pace REAL NOT NULL,
			PRIMARY KEY (track_id, source, time_offset),
			FOREIGN KEY (track_id, source) REFERENCES workouts(track_id, source) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
