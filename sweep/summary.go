package sweep

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses the runs of one smoothing law.
type Summary struct {
	Law           string  `csv:"law"`
	Runs          int     `csv:"runs"`
	MeanDeviation float64 `csv:"mean_deviation"`
	StdDeviation  float64 `csv:"std_deviation"`
	MaxDeviation  float64 `csv:"max_deviation"`
	// WorstFrameRate is the frame rate with the largest deviation.
	WorstFrameRate   float64 `csv:"worst_frame_rate"`
	MeanDisplacement float64 `csv:"mean_displacement"`
}

// Summarize groups results by law and reports deviation statistics, sorted by law.
//
// Parameters:
//   - results: output of Run
//
// Returns:
//   - []Summary: one summary per law
func Summarize(results []Result) []Summary {
	type group struct {
		deviations    []float64
		displacements []float64
		rates         []float64
	}
	groups := make(map[string]*group)
	for _, r := range results {
		g, ok := groups[r.Law]
		if !ok {
			g = &group{}
			groups[r.Law] = g
		}
		g.deviations = append(g.deviations, r.Deviation)
		g.displacements = append(g.displacements, r.Displacement)
		g.rates = append(g.rates, r.FrameRate)
	}

	out := make([]Summary, 0, len(groups))
	for law, g := range groups {
		mean, std := stat.MeanStdDev(g.deviations, nil)
		if len(g.deviations) < 2 {
			std = 0
		}
		worst := floats.MaxIdx(g.deviations)
		out = append(out, Summary{
			Law:              law,
			Runs:             len(g.deviations),
			MeanDeviation:    mean,
			StdDeviation:     std,
			MaxDeviation:     g.deviations[worst],
			WorstFrameRate:   g.rates[worst],
			MeanDisplacement: stat.Mean(g.displacements, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Law < out[j].Law })
	return out
}
