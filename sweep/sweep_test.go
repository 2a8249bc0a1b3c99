package sweep

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.FrameRates = []float64{20, 30, 60, 120}
	opts.Duration = 3
	opts.HoldSeconds = 0.2
	opts.ZoomEvent = 5
	return opts
}

func TestRunComparesLaws(t *testing.T) {
	results, err := Run(context.Background(), testOptions())
	require.NoError(t, err)
	require.Len(t, results, 8)

	byLaw := map[string][]Result{}
	for _, r := range results {
		byLaw[r.Law] = append(byLaw[r.Law], r)
	}
	exp := byLaw[string(rig.SmoothingExponential)]
	lerp := byLaw[string(rig.SmoothingLerp)]
	require.Len(t, exp, 4)
	require.Len(t, lerp, 4)

	// sorted by frame rate within a law; the highest rate is the reference
	assert.Equal(t, 20.0, exp[0].FrameRate)
	assert.Equal(t, 120.0, exp[3].FrameRate)
	assert.Zero(t, exp[3].Deviation)
	assert.Zero(t, lerp[3].Deviation)

	for _, r := range exp {
		assert.InDelta(t, exp[3].PeakSpeed, r.PeakSpeed, 1e-2, "exponential ramp does not depend on the step at %v Hz", r.FrameRate)
		assert.Less(t, r.Deviation, 0.01, "exponential displacement at %v Hz", r.FrameRate)
	}
	assert.Greater(t, lerp[0].PeakSpeed-lerp[3].PeakSpeed, 0.5, "lerp ramps faster with large steps")

	for _, r := range results {
		assert.Greater(t, r.StopTime, 0.0, "%s at %v Hz never stopped", r.Law, r.FrameRate)
		assert.InDelta(t, 20, r.FinalHeight, 1e-2, "zoom of 5 steps of 2 from 10")
		assert.Greater(t, r.Displacement, 3.0)
		assert.Equal(t, int(3*r.FrameRate), r.Frames)
	}

	summaries := Summarize(results)
	require.Len(t, summaries, 2)
	assert.Equal(t, string(rig.SmoothingExponential), summaries[0].Law)
	assert.Equal(t, string(rig.SmoothingLerp), summaries[1].Law)
	assert.Equal(t, 4, summaries[0].Runs)
	assert.Greater(t, summaries[1].MaxDeviation, summaries[0].MaxDeviation)
	assert.Equal(t, 20.0, summaries[1].WorstFrameRate)
	assert.GreaterOrEqual(t, summaries[0].MaxDeviation, summaries[0].MeanDeviation)
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	opts := testOptions()
	opts.FrameRates = nil
	_, err := Run(context.Background(), opts)
	assert.Error(t, err)

	opts = testOptions()
	opts.Rig.Damping = -1
	_, err = Run(context.Background(), opts)
	assert.ErrorIs(t, err, rig.ErrInvalidConfig)

	opts = testOptions()
	opts.HoldSeconds = opts.Duration + 1
	assert.Error(t, opts.Validate())
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	results := []Result{
		{Law: "exponential", FrameRate: 60, Frames: 180, Displacement: 3.4, PeakSpeed: 17.3, StopTime: 0.28, FinalHeight: 20},
		{Law: "lerp", FrameRate: 60, Frames: 180, Displacement: 3.39, PeakSpeed: 17.7, StopTime: 0.25, FinalHeight: 20, Deviation: 0.0015},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"law", "frame_rate", "frames", "displacement", "peak_speed", "stop_time", "final_height", "deviation"}, rows[0])
	assert.Equal(t, "lerp", rows[2][0])
	assert.Equal(t, "180", rows[2][2])

	buf.Reset()
	require.NoError(t, WriteSummaryCSV(&buf, Summarize(results)))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "law", rows[0][0])
}

func TestSummarizeSingleRun(t *testing.T) {
	s := Summarize([]Result{{Law: "lerp", FrameRate: 30, Displacement: 2, Deviation: 0.2}})
	require.Len(t, s, 1)
	assert.Zero(t, s[0].StdDeviation)
	assert.Equal(t, 0.2, s[0].MaxDeviation)
	assert.Equal(t, 30.0, s[0].WorstFrameRate)
	assert.Equal(t, 2.0, s[0].MeanDisplacement)
}
