// Package sweep runs the rig controller headless at several frame rates and
// smoothing laws and measures how far each trajectory drifts from the one at
// the highest frame rate.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// Options describes one sweep.
type Options struct {
	// FrameRates are the simulated frame rates in Hz. The highest is the reference.
	FrameRates []float64
	// Laws are the smoothing laws to compare.
	Laws []rig.SmoothingLaw
	// Duration is the simulated time per run in seconds.
	Duration float32
	// HoldSeconds is how long forward input is held before release.
	HoldSeconds float32
	// ZoomEvent, when non-zero, is sent as a single zoom event on the first frame.
	ZoomEvent float32
	// Rig is the base tuning; drag-pan and edge scroll are switched off.
	Rig rig.Config
	// Workers bounds how many runs execute at once.
	Workers int
	Logger  *slog.Logger
}

// DefaultOptions sweeps 20 to 240 Hz for both smoothing laws with the stock rig.
func DefaultOptions() Options {
	return Options{
		FrameRates:  []float64{20, 30, 60, 120, 144, 240},
		Laws:        []rig.SmoothingLaw{rig.SmoothingExponential, rig.SmoothingLerp},
		Duration:    4,
		HoldSeconds: 1.5,
		ZoomEvent:   5,
		Rig:         rig.DefaultConfig(),
		Workers:     4,
	}
}

// Validate checks the options before any run starts.
func (o Options) Validate() error {
	var errs []error
	if len(o.FrameRates) == 0 {
		errs = append(errs, errors.New("at least one frame rate is required"))
	}
	for _, r := range o.FrameRates {
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			errs = append(errs, fmt.Errorf("frame rate must be positive, got %v", r))
		}
	}
	if len(o.Laws) == 0 {
		errs = append(errs, errors.New("at least one smoothing law is required"))
	}
	if o.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %v", o.Duration))
	}
	if o.HoldSeconds < 0 || o.HoldSeconds > o.Duration {
		errs = append(errs, fmt.Errorf("hold must lie in [0, duration], got %v", o.HoldSeconds))
	}
	for _, l := range o.Laws {
		cfg := o.Rig
		cfg.Smoothing = l
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Result is the outcome of one (law, frame rate) run.
type Result struct {
	Law          string  `csv:"law"`
	FrameRate    float64 `csv:"frame_rate"`
	Frames       int     `csv:"frames"`
	Displacement float64 `csv:"displacement"`
	PeakSpeed    float64 `csv:"peak_speed"`
	// StopTime is the time from release until the base stops; -1 if it never does.
	StopTime    float64 `csv:"stop_time"`
	FinalHeight float64 `csv:"final_height"`
	// Deviation is |displacement - reference| / reference for the same law.
	Deviation float64 `csv:"deviation"`
}

// Run executes every (law, frame rate) pair on a worker pool and returns the
// results sorted by law, then frame rate.
//
// Parameters:
//   - ctx: cancels runs that have not started yet
//   - opts: the sweep description
//
// Returns:
//   - []Result: one result per pair, with Deviation filled in
//   - error: an error if the options are invalid, a run fails or ctx is cancelled
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep options: %w", err)
	}
	logger := common.Coalesce(opts.Logger, slog.Default())
	workers := max(opts.Workers, 1)

	type job struct {
		law  rig.SmoothingLaw
		rate float64
	}
	var jobs []job
	for _, l := range opts.Laws {
		for _, r := range opts.FrameRates {
			jobs = append(jobs, job{l, r})
		}
	}

	pool := worker.NewDynamicWorkerPool(workers, len(jobs), time.Second)
	results := make([]Result, len(jobs))
	errs := make([]error, len(jobs))

	// The pool's Wait only returns once workers idle out, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return nil, err
				}
				res, err := runOne(opts, j.law, j.rate)
				results[i], errs[i] = res, err
				return res, err
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	fillDeviation(results)
	slices.SortFunc(results, func(a, b Result) int {
		if a.Law != b.Law {
			if a.Law < b.Law {
				return -1
			}
			return 1
		}
		switch {
		case a.FrameRate < b.FrameRate:
			return -1
		case a.FrameRate > b.FrameRate:
			return 1
		}
		return 0
	})
	logger.Info("sweep finished", "runs", len(results), "laws", len(opts.Laws), "frame_rates", len(opts.FrameRates))
	return results, nil
}

// runOne drives a controller with the scripted input at a fixed step.
func runOne(opts Options, law rig.SmoothingLaw, rate float64) (Result, error) {
	cfg := opts.Rig
	cfg.Smoothing = law
	cfg.EnableDragPan = false
	cfg.UseScreenEdge = false

	dt := float32(1 / rate)
	frames := int(math.Round(float64(opts.Duration) * rate))
	holdFrames := int(math.Round(float64(opts.HoldSeconds) * rate))

	frame := 0
	src := input.SourceFunc(func() input.Frame {
		var f input.Frame
		if frame < holdFrames {
			f.MoveAxis = mgl32.Vec2{0, 1}
		}
		if frame == 0 && opts.ZoomEvent != 0 {
			f.ZoomEvents = []float32{opts.ZoomEvent}
		}
		return f
	})

	sink := transform.NewRigTransform()
	rc, err := rig.NewRigController(src, sink, rig.WithConfig(cfg), rig.WithLogger(discardLogger))
	if err != nil {
		return Result{}, fmt.Errorf("%s at %v Hz: %w", law, rate, err)
	}
	defer rc.Close()

	start := rc.BasePosition()
	res := Result{Law: string(law), FrameRate: rate, Frames: frames, StopTime: -1}
	for ; frame < frames; frame++ {
		rc.Tick(dt)
		st := rc.State()
		res.PeakSpeed = max(res.PeakSpeed, float64(st.Motion.CurrentSpeed))
		if frame >= holdFrames && res.StopTime < 0 && st.Motion.HorizontalVelocity.LenSqr() == 0 {
			res.StopTime = float64(frame+1-holdFrames) / rate
		}
	}

	end := sink.Position()
	res.Displacement = float64(end.Sub(start).Len())
	res.FinalHeight = float64(rc.Height())
	return res, nil
}

// fillDeviation compares each run with the highest frame rate of the same law.
func fillDeviation(results []Result) {
	reference := make(map[string]Result)
	for _, r := range results {
		if ref, ok := reference[r.Law]; !ok || r.FrameRate > ref.FrameRate {
			reference[r.Law] = r
		}
	}
	for i, r := range results {
		ref := reference[r.Law].Displacement
		if ref == 0 {
			results[i].Deviation = math.Abs(r.Displacement)
			continue
		}
		results[i].Deviation = math.Abs(r.Displacement-ref) / ref
	}
}

var discardLogger = slog.New(slog.DiscardHandler)
