package inference

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// MeanSummary describes one sample: its size, mean and, for n > 1, a
// t-based confidence interval around the mean.
type MeanSummary struct {
	N           int
	Mean        float64
	StdDev      float64
	HasInterval bool
	Lower       float64
	Upper       float64
}

// Margin is the half-width of the interval, zero when there is none
func (s MeanSummary) Margin() float64 {
	if !s.HasInterval {
		return 0
	}
	return (s.Upper - s.Lower) / 2
}

// SummarizeMean computes the mean of values and, when there are at least two
// of them, a two-sided interval at the given confidence using the sample
// standard deviation (n-1 denominator). An empty sample has a NaN mean.
func SummarizeMean(values []float64, confidenceLevel float64) MeanSummary {
	s := MeanSummary{N: len(values), Mean: math.NaN()}
	if s.N == 0 {
		return s
	}

	s.Mean, _ = stats.Mean(values)
	if s.N < 2 {
		return s
	}

	s.StdDev, _ = stats.StandardDeviationSample(values)
	s.Lower, s.Upper = NewDistributions().ConfidenceIntervalMean(s.Mean, s.StdDev, s.N, confidenceLevel)
	s.HasInterval = true
	return s
}

// Pearson returns the Pearson correlation coefficient of two equal-length
// samples
func Pearson(x, y []float64) float64 {
	return stat.Correlation(x, y, nil)
}
