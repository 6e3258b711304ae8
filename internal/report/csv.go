package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// CSVWriter writes the five-section report as a CSV file
type CSVWriter struct {
	Dir string
}

// Format implements Writer
func (c *CSVWriter) Format() string { return "csv" }

// Write implements Writer
func (c *CSVWriter) Write(ctx context.Context, w *Workout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := reportPath(c.Dir, w, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, section := range Sections(w) {
		if err := cw.Write([]string{"# Section: " + section.Title}); err != nil {
			return "", err
		}
		if err := cw.WriteAll(section.Rows); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing csv: %w", err)
	}
	return path, nil
}
