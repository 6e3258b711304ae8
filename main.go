package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"swimreport/internal/analysis"
	"swimreport/internal/auth"
	"swimreport/internal/config"
	"swimreport/internal/observability"
	"swimreport/internal/report"
	"swimreport/internal/service"
	"swimreport/internal/store"
	"swimreport/internal/zepp"
)

const listLimit = 20

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.swimreport/config.json)")
	initConfig := flag.Bool("init", false, "Write an example config file and exit")
	list := flag.Bool("list", false, "List workouts recorded in the report ledger and exit")
	formats := flag.String("formats", "", "Comma-separated report formats, overrides the config (csv,xlsx,parquet)")
	verbose := flag.Bool("v", false, "Verbose logging, including every sample")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *initConfig:
		err = runInit(*configPath)
	case *list:
		err = runList(ctx, *configPath)
	default:
		err = run(ctx, logger, *configPath, *formats)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInit(path string) error {
	if err := config.CreateExample(path); err != nil {
		return fmt.Errorf("creating example config: %w", err)
	}
	if path == "" {
		dir, _ := config.GetConfigDir()
		path = filepath.Join(dir, "config.json")
	}
	fmt.Printf("Example config written to:\n  %s\n\n", path)
	fmt.Println("Add your Zepp app token (or set ZEPP_TOKEN) before running.")
	return nil
}

func run(ctx context.Context, logger *slog.Logger, configPath, formats string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if formats != "" {
		cfg.Output.Formats = strings.Split(formats, ",")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run with -init to create one)", err)
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	tokenSource, err := auth.NewTokenSource(cfg.Zepp.AppToken)
	if err != nil {
		return fmt.Errorf("creating token source: %w", err)
	}
	client := zepp.NewClient(cfg.Zepp.Endpoint, tokenSource)

	writers := buildWriters(cfg)

	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening report ledger: %w", err)
		}
		defer db.Close()
		writers = append(writers, db)
	}

	svc := service.NewReportService(client, writers, service.Options{
		Zones:       analysis.HRZones{MaxHR: cfg.Athlete.MaxHR},
		Location:    cfg.Location(),
		Concurrency: cfg.Processing.Concurrency,
		RunID:       runID,
	}, logger)

	progress := make(chan service.Progress)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			if p.Phase == service.PhaseWorkouts {
				fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", p.Completed, p.Total, p.Current)
			}
		}
	}()

	result, runErr := svc.Run(ctx, progress)
	<-done

	if result != nil {
		for _, o := range result.Workouts {
			if o.Workout != nil && o.Err == nil {
				fmt.Println(report.RenderSummary(o.Workout))
			}
		}
		fmt.Printf("%d workouts, %d swims: %d written, %d skipped, %d failed (%d API requests)\n",
			result.Found, result.Swims, result.Processed, result.Skipped, result.Failed, client.Requests())
	}

	if cfg.Metrics.TextfilePath != "" {
		if err := observability.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logger.Error("writing metrics textfile", "path", cfg.Metrics.TextfilePath, "error", err)
		}
	}

	return runErr
}

func buildWriters(cfg *config.Config) []report.Writer {
	var writers []report.Writer
	for _, f := range cfg.Output.Formats {
		switch strings.TrimSpace(f) {
		case "csv":
			writers = append(writers, &report.CSVWriter{Dir: cfg.Output.Dir})
		case "xlsx":
			writers = append(writers, &report.XLSXWriter{Dir: cfg.Output.Dir})
		case "parquet":
			writers = append(writers, &report.ParquetWriter{Dir: cfg.Output.Dir})
		}
	}
	return writers
}

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	listMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func runList(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path := cfg.Store.Path
	if path == "" {
		if path, err = store.DefaultPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no report ledger at %s", path)
	}

	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening report ledger: %w", err)
	}
	defer db.Close()

	records, err := db.ListWorkouts(ctx, listLimit)
	if err != nil {
		return fmt.Errorf("listing workouts: %w", err)
	}
	if len(records) == 0 {
		fmt.Println(listMutedStyle.Render("No workouts recorded yet."))
		return nil
	}

	fmt.Println(listHeaderStyle.Render(fmt.Sprintf("%-20s %-16s %9s %8s %8s %8s",
		"Start", "When", "Distance", "Moving", "HR max", "Samples")))
	for _, r := range records {
		fmt.Printf("%-20s %-16s %9s %8s %8s %8s\n",
			r.Start.Format("2006-01-02 15:04"),
			humanize.Time(r.Start),
			humanize.Comma(int64(r.Metrics.TotalDistance))+" m",
			report.FormatPercent(r.Metrics.PercentageMoving),
			fmt.Sprintf("%.0f", r.Metrics.HRMax),
			humanize.Comma(int64(r.SampleCount)),
		)
	}
	return nil
}
