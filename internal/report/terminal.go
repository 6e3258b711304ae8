package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
)

// Styles
var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(18)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	chartTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	zoneBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)

const (
	chartWidth  = 50
	chartHeight = 8
	zoneBarMax  = 30
)

// RenderSummary renders a terminal card for an analyzed workout
func RenderSummary(w *Workout) string {
	m := w.Result.Metrics

	var lines []string
	lines = append(lines, cardTitleStyle.Render(fmt.Sprintf("Swim %s", w.Start.Format("2006-01-02 15:04"))))

	metric := func(label, value string) string {
		return metricLabelStyle.Render(label) + metricValueStyle.Render(value)
	}
	lines = append(lines,
		metric("Distance", fmt.Sprintf("%s m", formatNumber(m.TotalDistance))),
		metric("Run time", FormatClock(w.RunTimeSeconds())),
		metric("Moving / idle", FormatPercent(m.PercentageMoving)+" / "+FormatPercent(m.PercentageIdle)),
		metric("HR start / end", fmt.Sprintf("%s / %s bpm", formatNumber(m.HRStart), formatNumber(m.HREnd))),
		metric("HR min / max", fmt.Sprintf("%s / %s bpm", formatNumber(m.HRMin), formatNumber(m.HRMax))),
		metric("HR variance", FormatFixed(m.HRVariance)),
		metric("Avg effort / rest", fmt.Sprintf("%ss / %ss", FormatFixed(m.AvgEffortDuration), FormatFixed(m.AvgRestDuration))),
		"",
	)

	for _, z := range m.ZonePercentages {
		bar := strings.Repeat("█", int(z.Percent/100*zoneBarMax+0.5))
		lines = append(lines, fmt.Sprintf("%-13s %8s %s", z.Label, FormatPercent(z.Percent), zoneBarStyle.Render(bar)))
	}

	if chart := renderHRChart(w); chart != "" {
		lines = append(lines, "", chart)
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderHRChart(w *Workout) string {
	data := make([]float64, len(w.Result.Samples))
	for i, s := range w.Result.Samples {
		data[i] = s.HeartRate
	}
	data = downsample(data, chartWidth)
	if len(data) < 3 {
		return ""
	}

	chart := asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
	)
	return chartTitleStyle.Render("Heart Rate Over Time (bpm)") + "\n" + chart
}

// downsample averages data into targetLen buckets
func downsample(data []float64, targetLen int) []float64 {
	if len(data) <= targetLen {
		return data
	}

	result := make([]float64, targetLen)
	ratio := float64(len(data)) / float64(targetLen)

	for i := 0; i < targetLen; i++ {
		start := int(float64(i) * ratio)
		end := int(float64(i+1) * ratio)
		if end > len(data) {
			end = len(data)
		}

		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		if end > start {
			result[i] = sum / float64(end-start)
		}
	}

	return result
}
