package report

import "strconv"

// Section is a titled block of rows in the tabular report. Empty rows are
// kept as spacers.
type Section struct {
	Title string
	Rows  [][]string
}

// Section titles, in report order
const (
	SectionBasic      = "Basic Workout Info"
	SectionGlobal     = "Global Metrics"
	SectionHR         = "HR Metrics"
	SectionEffortRest = "Effort/Rest Durations"
	SectionSeries     = "Time Series Data"
)

// SeriesHeader is the column header of the time-series section
var SeriesHeader = []string{"timestamp", "relative (s)", "elapsed_time", "hr_variation", "current_hr", "pace"}

// Sections lays out the five report sections for a workout
func Sections(w *Workout) []Section {
	return []Section{
		basicSection(w),
		globalSection(w),
		hrSection(w),
		effortRestSection(w),
		seriesSection(w),
	}
}

func basicSection(w *Workout) Section {
	m := w.Result.Metrics
	s := w.Summary
	return Section{
		Title: SectionBasic,
		Rows: [][]string{
			{
				"total_distance", "laps", "calories", "exercise_load", "run_time (HH:MM:SS)",
				"workout_start_time", "avg_heart_rate", "swolf", "percentage_moving",
				"percentage_idle", "track_id", "pool_length",
			},
			{
				formatNumber(m.TotalDistance),
				s.TotalTrips.String(),
				s.Calorie.String(),
				s.ExerciseLoad.String(),
				FormatClock(w.RunTimeSeconds()),
				w.Start.Format("15:04:05"),
				s.AvgHeartRate.String(),
				s.Swolf.String(),
				FormatPercent(m.PercentageMoving),
				FormatPercent(m.PercentageIdle),
				s.TrackID.String(),
				s.SwimPoolLength.String(),
			},
			{},
		},
	}
}

func globalSection(w *Workout) Section {
	s := w.Summary
	return Section{
		Title: SectionGlobal,
		Rows: [][]string{
			{"total_strokes", "avg_stroke_speed", "max_stroke_speed", "avg_distance_per_stroke", "training_effect", "swim_style"},
			{
				s.TotalStrokes.String(),
				s.AvgStrokeSpeed.String(),
				s.MaxStrokeSpeed.String(),
				s.AvgDistancePerStroke.String(),
				s.TrainingEffect.String(),
				s.SwimStyle.String(),
			},
			{},
		},
	}
}

func hrSection(w *Workout) Section {
	m := w.Result.Metrics
	rows := [][]string{
		{"hr_max", "hr_min", "hr_start", "hr_end", "hr_variance"},
		{
			formatNumber(m.HRMax),
			formatNumber(m.HRMin),
			formatNumber(m.HRStart),
			formatNumber(m.HREnd),
			FormatFixed(m.HRVariance),
		},
		{},
		{"Zone", "Percentage"},
	}
	for _, z := range m.ZonePercentages {
		rows = append(rows, []string{z.Label, FormatPercent(z.Percent)})
	}
	rows = append(rows, []string{})
	return Section{Title: SectionHR, Rows: rows}
}

func effortRestSection(w *Workout) Section {
	m := w.Result.Metrics
	return Section{
		Title: SectionEffortRest,
		Rows: [][]string{
			{"avg_effort_duration_s", "avg_rest_duration_s"},
			{FormatFixed(m.AvgEffortDuration), FormatFixed(m.AvgRestDuration)},
			{},
		},
	}
}

func seriesSection(w *Workout) Section {
	rows := make([][]string, 0, len(w.Result.Samples)+1)
	rows = append(rows, SeriesHeader)
	for i, s := range w.Result.Samples {
		rows = append(rows, []string{
			w.SampleTime(i).Format("15:04:05"),
			strconv.Itoa(i),
			FormatElapsed(i),
			strconv.Itoa(s.HRVariation),
			formatNumber(s.HeartRate),
			formatNumber(s.Pace),
		})
	}
	return Section{Title: SectionSeries, Rows: rows}
}
