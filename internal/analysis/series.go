package analysis

import (
	"strconv"
	"strings"
)

// Detail holds the three encoded streams of one workout as returned by the
// detail endpoint
type Detail struct {
	Time      string // "t1;t2;..."
	HeartRate string // "ts1,hr1;ts2,hr2;..." (first hr absolute, rest deltas)
	Pace      string // "p1;p2;..." with comma decimal separator
}

// DecodedSeries holds the decoded streams. The three slices may differ in
// length; everything downstream works on CommonLength().
type DecodedSeries struct {
	Times     []string
	HeartRate []int
	Pace      []string
}

// Decode splits all three streams of a workout detail
func Decode(d Detail) DecodedSeries {
	return DecodedSeries{
		Times:     DecodeTimes(d.Time),
		HeartRate: DecodeHeartRate(d.HeartRate),
		Pace:      DecodePace(d.Pace),
	}
}

// CommonLength returns the usable alignment window: the shortest of the
// three decoded streams
func (s DecodedSeries) CommonLength() int {
	return min(len(s.Times), len(s.HeartRate), len(s.Pace))
}

// DecodeTimes splits the time stream into trimmed, non-empty tokens
func DecodeTimes(raw string) []string {
	return splitTokens(raw)
}

// DecodeHeartRate extracts the hr field of each "timestamp,hr" pair.
// A pair whose hr field is not an integer decodes to 0; a segment without a
// second field carries no sample and is skipped.
func DecodeHeartRate(raw string) []int {
	var values []int
	for _, segment := range strings.Split(raw, ";") {
		if segment == "" {
			continue
		}
		parts := strings.Split(segment, ",")
		if len(parts) < 2 {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			v = 0
		}
		values = append(values, v)
	}
	return values
}

// DecodePace normalizes the decimal comma to a period and splits the pace
// stream. Tokens stay textual; see ParsePace.
func DecodePace(raw string) []string {
	return splitTokens(strings.ReplaceAll(raw, ",", "."))
}

// ParsePace converts the first n pace tokens to numbers. If any token fails
// to parse the whole series falls back to n zeros.
func ParsePace(tokens []string, n int) []float64 {
	if n > len(tokens) {
		n = len(tokens)
	}
	pace := make([]float64, n)
	for i, tok := range tokens[:n] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return make([]float64, n)
		}
		pace[i] = v
	}
	return pace
}

func splitTokens(raw string) []string {
	var tokens []string
	for _, t := range strings.Split(raw, ";") {
		t = strings.TrimSpace(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
