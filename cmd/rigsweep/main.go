// Command rigsweep runs the headless rig at a range of frame rates and reports
// how far each smoothing law drifts from its highest-rate run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-rts/config"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/sweep"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file for the rig tunables (empty = use defaults)")
	rates := flag.String("rates", "20,30,60,120,144,240", "Comma-separated frame rates in Hz")
	laws := flag.String("laws", "exponential,lerp", "Comma-separated smoothing laws")
	duration := flag.Float64("duration", 4, "Simulated seconds per run")
	hold := flag.Float64("hold", 1.5, "Seconds the forward key is held")
	zoom := flag.Float64("zoom", 5, "Zoom event sent on the first frame")
	workers := flag.Int("workers", 4, "Worker goroutines")
	outputDir := flag.String("output", "", "Output directory for results.csv and summary.csv (empty = stdout only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	opts := sweep.DefaultOptions()
	opts.Rig = cfg.Rig
	opts.Duration = float32(*duration)
	opts.HoldSeconds = float32(*hold)
	opts.ZoomEvent = float32(*zoom)
	opts.Workers = *workers
	opts.Logger = logger
	if opts.FrameRates, err = parseRates(*rates); err != nil {
		log.Fatalf("invalid -rates: %v", err)
	}
	opts.Laws = parseLaws(*laws)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sweep.Run(ctx, opts)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	summaries := sweep.Summarize(results)

	for _, s := range summaries {
		fmt.Printf("%-12s runs=%d mean_dev=%.5f std_dev=%.5f max_dev=%.5f worst=%vHz\n",
			s.Law, s.Runs, s.MeanDeviation, s.StdDeviation, s.MaxDeviation, s.WorstFrameRate)
	}

	if *outputDir == "" {
		if err := sweep.WriteCSV(os.Stdout, results); err != nil {
			log.Fatalf("failed to write results: %v", err)
		}
		return
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := writeFile(filepath.Join(*outputDir, "results.csv"), func(f *os.File) error {
		return sweep.WriteCSV(f, results)
	}); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
	if err := writeFile(filepath.Join(*outputDir, "summary.csv"), func(f *os.File) error {
		return sweep.WriteSummaryCSV(f, summaries)
	}); err != nil {
		log.Fatalf("failed to write summary: %v", err)
	}
	logger.Info("sweep written", "dir", *outputDir, "runs", len(results))
}

func parseRates(s string) ([]float64, error) {
	var rates []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing rate %q: %w", field, err)
		}
		rates = append(rates, v)
	}
	return rates, nil
}

func parseLaws(s string) []rig.SmoothingLaw {
	var laws []rig.SmoothingLaw
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			laws = append(laws, rig.SmoothingLaw(field))
		}
	}
	return laws
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
