package analysis

import (
	"errors"
	"slices"
)

// ErrEmptySeries is returned when the decoded streams share no samples
var ErrEmptySeries = errors.New("no usable data: decoded series have no common samples")

// Summary holds the workout-level fields the metrics depend on
type Summary struct {
	Laps       float64
	PoolLength float64 // meters
}

// ComputedMetrics is the aggregate record for one workout
type ComputedMetrics struct {
	TotalDistance     float64 // meters
	AveragePace       float64
	PercentageMoving  float64
	PercentageIdle    float64
	HRMax             float64
	HRMin             float64
	HRStart           float64
	HREnd             float64
	HRVariance        float64
	ZonePercentages   []ZoneShare
	AvgEffortDuration float64 // seconds
	AvgRestDuration   float64 // seconds
}

// ZonePercent returns the share for a zone label, or 0 if unknown
func (m ComputedMetrics) ZonePercent(label string) float64 {
	for _, z := range m.ZonePercentages {
		if z.Label == label {
			return z.Percent
		}
	}
	return 0
}

// Sample is one aligned second of the workout
type Sample struct {
	Offset      int    // seconds from start
	Time        string // raw time token
	HRVariation int
	HeartRate   float64
	Pace        float64
}

// Result is the outcome of analyzing one workout
type Result struct {
	Metrics ComputedMetrics
	Samples []Sample
}

// Analyze runs the whole pipeline for one workout: decode, align on the
// common length, rebuild heart rate, classify zones, segment effort/rest and
// aggregate.
func Analyze(detail Detail, summary Summary, zones HRZones) (*Result, error) {
	decoded := Decode(detail)

	n := decoded.CommonLength()
	if n == 0 {
		return nil, ErrEmptySeries
	}

	absolute, variation := ReconstructHeartRate(decoded.HeartRate, n)
	pace := ParsePace(decoded.Pace, n)

	metrics := ComputeMetrics(summary, absolute, variation, pace,
		ZoneDistribution(absolute, zones), SegmentEffortRest(pace))

	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			Offset:      i,
			Time:        decoded.Times[i],
			HRVariation: variation[i],
			HeartRate:   absolute[i],
			Pace:        pace[i],
		}
	}

	return &Result{Metrics: metrics, Samples: samples}, nil
}

// ComputeMetrics merges the aligned series and the derived distributions into
// one record. absolute, variation and pace must share the same length.
func ComputeMetrics(summary Summary, absolute []float64, variation []int, pace []float64, zones []ZoneShare, seg Segmentation) ComputedMetrics {
	metrics := ComputedMetrics{
		TotalDistance:     summary.Laps * summary.PoolLength,
		ZonePercentages:   zones,
		AvgEffortDuration: seg.AvgEffort(),
		AvgRestDuration:   seg.AvgRest(),
		HRVariance:        HRVariance(variation),
	}

	if len(absolute) > 0 {
		metrics.HRMax = slices.Max(absolute)
		metrics.HRMin = slices.Min(absolute)
		metrics.HRStart = absolute[0]
		metrics.HREnd = absolute[len(absolute)-1]
	}

	if len(pace) > 0 {
		var sum float64
		for _, p := range pace {
			sum += p
		}
		metrics.AveragePace = sum / float64(len(pace))
		metrics.PercentageMoving = MovingPercentage(pace)
		metrics.PercentageIdle = 100 - metrics.PercentageMoving
	}

	return metrics
}

// MovingPercentage returns the share of samples with a positive pace
func MovingPercentage(pace []float64) float64 {
	if len(pace) == 0 {
		return 0
	}
	moving := 0
	for _, p := range pace {
		if p > 0 {
			moving++
		}
	}
	return float64(moving) / float64(len(pace)) * 100
}

// HRVariance returns the population variance of the deltas, skipping the
// leading 0 placeholder. Fewer than two deltas give 0.
func HRVariance(variation []int) float64 {
	if len(variation) < 3 {
		return 0
	}
	deltas := variation[1:]

	var sum float64
	for _, d := range deltas {
		sum += float64(d)
	}
	mean := sum / float64(len(deltas))

	var sq float64
	for _, d := range deltas {
		diff := float64(d) - mean
		sq += diff * diff
	}
	return sq / float64(len(deltas))
}
