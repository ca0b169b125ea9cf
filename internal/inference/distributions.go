package inference

import (
	"fmt"
	"math"

	"evalreport/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides the distribution quantiles and p-values used by the
// aggregation and correlation stages
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TCritical returns the two-sided Student-t critical value for a confidence
// level, e.g. 0.95 with 9 degrees of freedom gives ~2.262.
func (sd *Distributions) TCritical(confidenceLevel float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return math.NaN()
	}
	alpha := 1.0 - confidenceLevel
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}.Quantile(1.0 - alpha/2.0)
}

// ConfidenceIntervalMean computes confidence interval for population mean
func (sd *Distributions) ConfidenceIntervalMean(sampleMean, sampleStd float64, sampleSize int, confidenceLevel float64) (lower, upper float64) {
	if sampleSize < 2 {
		return sampleMean, sampleMean
	}

	tCritical := sd.TCritical(confidenceLevel, sampleSize-1)

	// Standard error
	se := sampleStd / math.Sqrt(float64(sampleSize))

	margin := tCritical * se
	return sampleMean - margin, sampleMean + margin
}

// TTestPValue computes the two-tailed p-value of a t statistic
func (sd *Distributions) TTestPValue(tStatistic float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
}

// CorrelationPValue computes exact p-value for correlation coefficient
func (sd *Distributions) CorrelationPValue(correlation float64, sampleSize int) float64 {
	if sampleSize < 3 {
		return 1.0
	}
	if math.Abs(correlation) >= 1 {
		return 0
	}

	// Transform correlation to t-statistic
	df := sampleSize - 2
	tStatistic := correlation * math.Sqrt(float64(df)/(1-correlation*correlation))

	return sd.TTestPValue(tStatistic, df)
}

// NormalQuantile returns the standard normal quantile
func (sd *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// CorrelationMargin is the upper margin of a Pearson correlation's
// confidence interval via Fisher's z transformation: tanh(z+z_crit·SE) − r.
func (sd *Distributions) CorrelationMargin(r float64, sampleSize int, confidenceLevel float64) (float64, error) {
	if sampleSize <= 3 {
		return 0, fmt.Errorf("%w: Fisher transformation needs more than 3 samples, got %d",
			core.ErrInsufficientData, sampleSize)
	}

	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(sampleSize-3))
	zCrit := sd.NormalQuantile(1 - (1-confidenceLevel)/2)
	return math.Tanh(z+zCrit*se) - r, nil
}
