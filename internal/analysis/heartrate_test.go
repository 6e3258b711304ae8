package analysis

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestReconstructHeartRate(t *testing.T) {
	tests := []struct {
		name          string
		tokens        []int
		n             int
		wantAbsolute  []float64
		wantVariation []int
	}{
		{
			name:          "holds last value when streams are longer",
			tokens:        []int{70, 5, -3},
			n:             5,
			wantAbsolute:  []float64{70, 75, 72, 72, 72},
			wantVariation: []int{0, 5, -3, 0, 0},
		},
		{
			name:          "truncates to target length",
			tokens:        []int{100, 1, 1, 1, 1},
			n:             3,
			wantAbsolute:  []float64{100, 101, 102},
			wantVariation: []int{0, 1, 1},
		},
		{
			name:          "no tokens starts at default",
			tokens:        nil,
			n:             3,
			wantAbsolute:  []float64{70, 70, 70},
			wantVariation: []int{0, 0, 0},
		},
		{
			name:          "single token",
			tokens:        []int{120},
			n:             1,
			wantAbsolute:  []float64{120},
			wantVariation: []int{0},
		},
		{
			name:          "zero length",
			tokens:        []int{120, 1},
			n:             0,
			wantAbsolute:  []float64{},
			wantVariation: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absolute, variation := ReconstructHeartRate(tt.tokens, tt.n)
			if !reflect.DeepEqual(absolute, tt.wantAbsolute) {
				t.Errorf("absolute = %v, want %v", absolute, tt.wantAbsolute)
			}
			if !reflect.DeepEqual(variation, tt.wantVariation) {
				t.Errorf("variation = %v, want %v", variation, tt.wantVariation)
			}
		})
	}
}

func TestReconstructHeartRateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		tokens := make([]int, rng.Intn(40))
		for i := range tokens {
			if i == 0 {
				tokens[i] = 60 + rng.Intn(100)
			} else {
				tokens[i] = rng.Intn(11) - 5
			}
		}
		n := 1 + rng.Intn(60)

		absolute, variation := ReconstructHeartRate(tokens, n)

		if len(absolute) != n || len(variation) != n {
			t.Fatalf("lengths = %d/%d, want %d", len(absolute), len(variation), n)
		}

		decoded := min(len(tokens), n)
		for i := 1; i < decoded; i++ {
			if absolute[i] != absolute[i-1]+float64(tokens[i]) {
				t.Fatalf("absolute[%d] = %v, want %v + %d", i, absolute[i], absolute[i-1], tokens[i])
			}
		}

		// Padding repeats the last computed element
		last := absolute[max(decoded, 1)-1]
		for i := max(decoded, 1); i < n; i++ {
			if absolute[i] != last {
				t.Fatalf("padded absolute[%d] = %v, want %v", i, absolute[i], last)
			}
		}

		for i := 1; i < n; i++ {
			if absolute[i] != absolute[i-1]+float64(variation[i]) {
				t.Fatalf("variation[%d] = %d does not explain absolute step", i, variation[i])
			}
		}
	}
}
