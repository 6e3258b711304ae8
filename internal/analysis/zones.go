package analysis

// HRZones holds the athlete settings used for zone classification
type HRZones struct {
	MaxHR float64 // theoretical max, e.g. 220 - age
}

// DefaultZones returns the defaults used when nothing is configured
func DefaultZones() HRZones {
	return HRZones{MaxHR: 196}
}

// Zone is a half-open band [Low, High) of heart rate in bpm
type Zone struct {
	Label string
	Low   float64
	High  float64
}

// ZoneShare is the share of all samples that fell into a zone, in percent
type ZoneShare struct {
	Label   string
	Percent float64
}

// zoneBounds are the band edges as a fraction of max HR
var zoneBounds = []struct {
	label     string
	low, high float64
}{
	{"Z1 (50-60%)", 0.5, 0.6},
	{"Z2 (60-70%)", 0.6, 0.7},
	{"Z3 (70-80%)", 0.7, 0.8},
	{"Z4 (80-90%)", 0.8, 0.9},
	{"Z5 (90-100%)", 0.9, 1.0},
}

// Zones returns the five bands for the configured max HR, Z1 first
func (z HRZones) Zones() []Zone {
	zones := make([]Zone, len(zoneBounds))
	for i, b := range zoneBounds {
		zones[i] = Zone{
			Label: b.label,
			Low:   b.low * z.MaxHR,
			High:  b.high * z.MaxHR,
		}
	}
	return zones
}

// Contains reports whether hr falls in [Low, High)
func (z Zone) Contains(hr float64) bool {
	return hr >= z.Low && hr < z.High
}

// ZoneDistribution assigns each sample to the first zone containing it and
// returns per-zone percentages of the total sample count. Samples below 50%
// or at/above 100% of max HR count towards no zone, so the shares may sum to
// less than 100.
func ZoneDistribution(hr []float64, zones HRZones) []ZoneShare {
	bands := zones.Zones()
	counts := make([]int, len(bands))

	for _, v := range hr {
		for i, b := range bands {
			if b.Contains(v) {
				counts[i]++
				break
			}
		}
	}

	shares := make([]ZoneShare, len(bands))
	for i, b := range bands {
		shares[i] = ZoneShare{Label: b.Label}
		if len(hr) > 0 {
			shares[i].Percent = float64(counts[i]) / float64(len(hr)) * 100
		}
	}
	return shares
}
