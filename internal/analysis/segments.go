package analysis

// PaceState is the moving state of a single pace sample
type PaceState int

const (
	StateIdle   PaceState = iota // pace == 0
	StateEffort                  // pace > 0
)

func (s PaceState) String() string {
	if s == StateEffort {
		return "effort"
	}
	return "idle"
}

func stateOf(pace float64) PaceState {
	if pace > 0 {
		return StateEffort
	}
	return StateIdle
}

// Segmentation holds the lengths, in samples, of every effort and rest run
type Segmentation struct {
	EffortDurations []int
	RestDurations   []int
}

// SegmentEffortRest splits the pace series into maximal runs of effort and
// idle samples. The open run is flushed at the end of input.
func SegmentEffortRest(pace []float64) Segmentation {
	var seg Segmentation
	if len(pace) == 0 {
		return seg
	}

	state := stateOf(pace[0])
	duration := 0

	for _, p := range pace {
		next := stateOf(p)
		if next == state {
			duration++
			continue
		}
		seg.close(state, duration)
		state = next
		duration = 1
	}
	seg.close(state, duration)

	return seg
}

func (s *Segmentation) close(state PaceState, duration int) {
	if state == StateEffort {
		s.EffortDurations = append(s.EffortDurations, duration)
	} else {
		s.RestDurations = append(s.RestDurations, duration)
	}
}

// AvgEffort returns the mean effort run length, or 0 with no effort runs
func (s Segmentation) AvgEffort() float64 {
	return meanInt(s.EffortDurations)
}

// AvgRest returns the mean rest run length, or 0 with no rest runs
func (s Segmentation) AvgRest() float64 {
	return meanInt(s.RestDurations)
}

func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
