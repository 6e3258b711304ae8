package zepp

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"swimreport/internal/analysis"
)

// Field is a summary value the API sends either as a JSON string or a JSON
// number. The text is kept as received.
type Field string

// UnmarshalJSON accepts strings, numbers and null
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(data)
	return nil
}

// String returns the raw text
func (f Field) String() string {
	return string(f)
}

// Float parses the field, reporting whether it held a number
func (f Field) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FloatOr parses the field, returning def when it is missing or malformed
func (f Field) FloatOr(def float64) float64 {
	if v, ok := f.Float(); ok {
		return v
	}
	return def
}

// WorkoutSummary is one entry from the workout history
type WorkoutSummary struct {
	TrackID              Field `json:"trackid"` // epoch seconds, unique per source
	Source               Field `json:"source"`
	SwimPoolLength       Field `json:"swim_pool_length"` // meters
	TotalTrips           Field `json:"total_trips"`      // laps
	Calorie              Field `json:"calorie"`
	ExerciseLoad         Field `json:"exercise_load"`
	AvgHeartRate         Field `json:"avg_heart_rate"`
	Swolf                Field `json:"swolf"`
	TotalStrokes         Field `json:"total_strokes"`
	AvgStrokeSpeed       Field `json:"avg_stroke_speed"`
	MaxStrokeSpeed       Field `json:"max_stroke_speed"`
	AvgDistancePerStroke Field `json:"avg_distance_per_stroke"`
	TrainingEffect       Field `json:"te"`
	SwimStyle            Field `json:"swim_style"`
}

// IsSwimming reports whether the workout has a strictly positive pool length
func (w WorkoutSummary) IsSwimming() bool {
	v, ok := w.SwimPoolLength.Float()
	return ok && v > 0
}

// StartTime returns the workout start from the track id
func (w WorkoutSummary) StartTime() (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(string(w.TrackID)), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

// AnalysisSummary extracts the fields the metrics need
func (w WorkoutSummary) AnalysisSummary() analysis.Summary {
	return analysis.Summary{
		Laps:       w.TotalTrips.FloatOr(0),
		PoolLength: w.SwimPoolLength.FloatOr(0),
	}
}

// WorkoutDetail holds the encoded per-second streams of a workout
type WorkoutDetail struct {
	Time      string `json:"time"`
	HeartRate string `json:"heart_rate"`
	Pace      string `json:"pace"`
}

// AnalysisDetail converts the detail for the analysis pipeline
func (d WorkoutDetail) AnalysisDetail() analysis.Detail {
	return analysis.Detail{
		Time:      d.Time,
		HeartRate: d.HeartRate,
		Pace:      d.Pace,
	}
}

type historyResponse struct {
	Data struct {
		Summary []WorkoutSummary `json:"summary"`
	} `json:"data"`
}

type detailResponse struct {
	Data WorkoutDetail `json:"data"`
}
