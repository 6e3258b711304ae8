package analysis

import (
	"reflect"
	"testing"
)

func TestSegmentEffortRest(t *testing.T) {
	tests := []struct {
		name       string
		pace       []float64
		wantEffort []int
		wantRest   []int
		avgEffort  float64
		avgRest    float64
	}{
		{
			name:       "starts idle",
			pace:       []float64{0, 0, 5, 5, 5, 0},
			wantEffort: []int{3},
			wantRest:   []int{2, 1},
			avgEffort:  3,
			avgRest:    1.5,
		},
		{
			name:       "all moving",
			pace:       []float64{1, 2, 3, 4},
			wantEffort: []int{4},
			wantRest:   nil,
			avgEffort:  4,
			avgRest:    0,
		},
		{
			name:       "all idle",
			pace:       []float64{0, 0, 0},
			wantEffort: nil,
			wantRest:   []int{3},
			avgEffort:  0,
			avgRest:    3,
		},
		{
			name:       "single effort sample",
			pace:       []float64{2.5},
			wantEffort: []int{1},
			wantRest:   nil,
			avgEffort:  1,
			avgRest:    0,
		},
		{
			name:       "single idle sample",
			pace:       []float64{0},
			wantEffort: nil,
			wantRest:   []int{1},
			avgEffort:  0,
			avgRest:    1,
		},
		{
			name:       "alternating intervals",
			pace:       []float64{1, 1, 0, 1, 1, 1, 1, 0, 0, 0},
			wantEffort: []int{2, 4},
			wantRest:   []int{1, 3},
			avgEffort:  3,
			avgRest:    2,
		},
		{
			name: "empty",
			pace: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := SegmentEffortRest(tt.pace)
			if !reflect.DeepEqual(seg.EffortDurations, tt.wantEffort) {
				t.Errorf("EffortDurations = %v, want %v", seg.EffortDurations, tt.wantEffort)
			}
			if !reflect.DeepEqual(seg.RestDurations, tt.wantRest) {
				t.Errorf("RestDurations = %v, want %v", seg.RestDurations, tt.wantRest)
			}
			if seg.AvgEffort() != tt.avgEffort {
				t.Errorf("AvgEffort() = %v, want %v", seg.AvgEffort(), tt.avgEffort)
			}
			if seg.AvgRest() != tt.avgRest {
				t.Errorf("AvgRest() = %v, want %v", seg.AvgRest(), tt.avgRest)
			}
		})
	}
}

func TestSegmentEffortRestCoversEverySample(t *testing.T) {
	pace := []float64{0, 3, 3, 0, 0, 2, 0, 1, 1, 1}
	seg := SegmentEffortRest(pace)

	total := 0
	for _, d := range seg.EffortDurations {
		total += d
	}
	for _, d := range seg.RestDurations {
		total += d
	}
	if total != len(pace) {
		t.Errorf("sum of run lengths = %d, want %d", total, len(pace))
	}
}

func TestPaceStateString(t *testing.T) {
	if StateEffort.String() != "effort" || StateIdle.String() != "idle" {
		t.Errorf("unexpected state names %q/%q", StateEffort, StateIdle)
	}
}
