package report

import (
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type sampleParquetRow struct {
	TrackID     string  `parquet:"name=track_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Timestamp   string  `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	RawTime     string  `parquet:"name=raw_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	RelativeS   int64   `parquet:"name=relative_s, type=INT64"`
	HRVariation int64   `parquet:"name=hr_variation, type=INT64"`
	CurrentHR   float64 `parquet:"name=current_hr, type=DOUBLE"`
	Pace        float64 `parquet:"name=pace, type=DOUBLE"`
}

// ParquetWriter writes the aligned per-second series as a parquet file.
// The summary sections are not part of this output.
type ParquetWriter struct {
	Dir string
}

// Format implements Writer
func (p *ParquetWriter) Format() string { return "parquet" }

// Write implements Writer
func (p *ParquetWriter) Write(ctx context.Context, w *Workout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := reportPath(p.Dir, w, "parquet")
	if err != nil {
		return "", err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("creating parquet file: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(sampleParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return "", fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	trackID := w.Summary.TrackID.String()
	for i, s := range w.Result.Samples {
		row := sampleParquetRow{
			TrackID:     trackID,
			Timestamp:   w.SampleTime(i).Format("15:04:05"),
			RawTime:     s.Time,
			RelativeS:   int64(i),
			HRVariation: int64(s.HRVariation),
			CurrentHR:   s.HeartRate,
			Pace:        s.Pace,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return "", fmt.Errorf("writing parquet row %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return "", fmt.Errorf("finishing parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", err
	}
	return path, nil
}
