package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	seriesSheet  = "Series"
)

// XLSXWriter writes the report as a workbook: the summary sections on one
// sheet and the per-second series on another
type XLSXWriter struct {
	Dir string
}

// Format implements Writer
func (x *XLSXWriter) Format() string { return "xlsx" }

// Write implements Writer
func (x *XLSXWriter) Write(ctx context.Context, w *Workout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := reportPath(x.Dir, w, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(seriesSheet); err != nil {
		return "", err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}

	row := 1
	for _, section := range Sections(w) {
		if section.Title == SectionSeries {
			continue
		}
		if err := setRow(f, summarySheet, row, []string{section.Title}); err != nil {
			return "", err
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStyle(summarySheet, cell, cell, bold); err != nil {
			return "", err
		}
		row++
		for _, r := range section.Rows {
			if err := setRow(f, summarySheet, row, r); err != nil {
				return "", err
			}
			row++
		}
	}

	if err := writeSeriesSheet(f, w, bold); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

func writeSeriesSheet(f *excelize.File, w *Workout, headerStyle int) error {
	if err := setRow(f, seriesSheet, 1, SeriesHeader); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(SeriesHeader), 1)
	if err := f.SetCellStyle(seriesSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, s := range w.Result.Samples {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			w.SampleTime(i).Format("15:04:05"),
			i,
			FormatElapsed(i),
			s.HRVariation,
			s.HeartRate,
			s.Pace,
		}
		if err := f.SetSheetRow(seriesSheet, cell, &values); err != nil {
			return fmt.Errorf("writing series row %d: %w", i, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
