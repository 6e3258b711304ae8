package analysis

// DefaultStartHR is used as the starting heart rate when a workout has no
// heart-rate samples at all
const DefaultStartHR = 70.0

// ReconstructHeartRate rebuilds absolute heart rate from the delta-encoded
// tokens. tokens[0] is absolute, each following token is added to the running
// total. Both returned series have exactly n elements: longer input is
// truncated, shorter input holds the last value (with a 0 variation).
//
// variation[0] is always 0 and variation[i] is the delta that produced
// absolute[i].
func ReconstructHeartRate(tokens []int, n int) (absolute []float64, variation []int) {
	if n <= 0 {
		return []float64{}, []int{}
	}

	start := DefaultStartHR
	if len(tokens) > 0 {
		start = float64(tokens[0])
	}

	absolute = make([]float64, 0, n)
	variation = make([]int, 0, n)
	absolute = append(absolute, start)
	variation = append(variation, 0)

	current := start
	for i := 1; i < len(tokens) && len(absolute) < n; i++ {
		current += float64(tokens[i])
		absolute = append(absolute, current)
		variation = append(variation, tokens[i])
	}

	// Hold the last sample for the remainder
	for len(absolute) < n {
		absolute = append(absolute, current)
		variation = append(variation, 0)
	}

	return absolute, variation
}
