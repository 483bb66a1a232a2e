package bench

import (
	"github.com/katalvlaran/lvlath-tsp/tsp"
	"github.com/montanaflynn/stats"
)

// FormulationSummary aggregates the integral solves of one formulation.
type FormulationSummary struct {
	Formulation string
	Runs        int

	// Integral solve times in seconds.
	MeanTime   float64
	MedianTime float64
	MaxTime    float64

	// Relative optimality gaps; HasGap is false when no relaxation ran.
	HasGap    bool
	MeanGap   float64
	MedianGap float64
}

// Summary describes one benchmark run.
type Summary struct {
	Instances  int // loaded successfully
	Skipped    int // unreadable
	Failed     int // failed solve sessions
	Mismatches int // integral objectives that disagree with Held–Karp

	Formulations []FormulationSummary
}

type collector struct {
	instances, skipped, failed, mismatches int

	times map[tsp.Kind][]float64
	gaps  map[tsp.Kind][]float64
}

func newCollector() *collector {
	return &collector{
		times: make(map[tsp.Kind][]float64),
		gaps:  make(map[tsp.Kind][]float64),
	}
}

func (c *collector) addTime(k tsp.Kind, sec float64) { c.times[k] = append(c.times[k], sec) }
func (c *collector) addGap(k tsp.Kind, gap float64)  { c.gaps[k] = append(c.gaps[k], gap) }

func (c *collector) summary() Summary {
	s := Summary{
		Instances:  c.instances,
		Skipped:    c.skipped,
		Failed:     c.failed,
		Mismatches: c.mismatches,
	}

	for _, k := range tsp.Kinds {
		times := c.times[k]
		if len(times) == 0 {
			continue
		}
		fs := FormulationSummary{Formulation: k.String(), Runs: len(times)}
		// stats only errors on empty input, ruled out above
		fs.MeanTime, _ = stats.Mean(times)
		fs.MedianTime, _ = stats.Median(times)
		fs.MaxTime, _ = stats.Max(times)

		if gaps := c.gaps[k]; len(gaps) > 0 {
			fs.HasGap = true
			fs.MeanGap, _ = stats.Mean(gaps)
			fs.MedianGap, _ = stats.Median(gaps)
		}
		s.Formulations = append(s.Formulations, fs)
	}

	return s
}
