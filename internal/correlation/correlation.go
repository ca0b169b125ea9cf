// Package correlation measures linear association between evaluation
// columns: Pearson's r, its p-value and a Fisher-z margin.
package correlation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/domain/table"
	"evalreport/internal"
	"evalreport/internal/analysis"
	"evalreport/internal/inference"
)

// SignificanceLevel is the p-value below which a correlation is reported as
// statistically significant
const SignificanceLevel = 0.05

// Pair names two columns to correlate at one analysis level
type Pair struct {
	X     string
	Y     string
	Level analysis.Level
	// RecodeX maps raw values of X to numbers; values it does not list
	// become null
	RecodeX map[string]float64
}

func (p Pair) String() string {
	return p.X + " vs " + p.Y
}

// YesNo recodes Y/N flags to 1/0
var YesNo = map[string]float64{"Y": 1, "N": 0}

// DefaultPairs are the correlations written next to the summary tables
func DefaultPairs() []Pair {
	return []Pair{
		{X: evaluation.ColReasoningQuality, Y: evaluation.ColUsefulness, Level: analysis.LevelAction},
		{X: evaluation.ColTreeDepth, Y: evaluation.ColUsefulness, Level: analysis.LevelAction},
		{X: evaluation.ColConcatenatedTextLen, Y: evaluation.ColUsefulness, Level: analysis.LevelAction},
		{X: evaluation.ColReasoningHallucination, Y: evaluation.ColUsefulness, Level: analysis.LevelAction, RecodeX: YesNo},
	}
}

// Result is one computed (or skipped) correlation
type Result struct {
	Pair   Pair
	N      int
	R      float64
	PValue float64
	Margin float64
	// Skipped holds the reason the pair could not be computed
	Skipped string
}

// Significant reports p < SignificanceLevel
func (r Result) Significant() bool {
	return r.Skipped == "" && r.PValue < SignificanceLevel
}

// String renders the result line, e.g.
// "Correlation: 0.412 ± 0.190, p-value: 1.20e-03 (Statistically significant)"
func (r Result) String() string {
	if r.Skipped != "" {
		return "Skipped: " + r.Skipped
	}
	significance := "Not statistically significant"
	if r.Significant() {
		significance = "Statistically significant"
	}
	return fmt.Sprintf("Correlation: %.3f ± %.3f, p-value: %.2e (%s)", r.R, r.Margin, r.PValue, significance)
}

// Analyzer computes correlations at a fixed confidence level
type Analyzer struct {
	confidence float64
	dist       *inference.Distributions
	logger     *internal.Logger
}

// NewAnalyzer creates an analyzer; confidence 0 means analysis.DefaultConfidence
func NewAnalyzer(confidence float64, logger *internal.Logger) *Analyzer {
	if confidence == 0 {
		confidence = analysis.DefaultConfidence
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Analyzer{confidence: confidence, dist: inference.NewDistributions(), logger: logger}
}

// Correlate computes one pair. Rows are reduced to the pair's level with
// the same deduplication the aggregator uses, then rows where either value
// is null are dropped. At least four complete rows with non-constant values
// are required.
func (a *Analyzer) Correlate(data *table.Table, p Pair) (Result, error) {
	res := Result{Pair: p}

	filtered, err := analysis.FilterForLevel(data, p.Level, p.X, p.Y)
	if err != nil {
		return res, err
	}

	var xs, ys []float64
	for r := 0; r < filtered.Len(); r++ {
		xv := filtered.Value(r, p.X)
		if p.RecodeX != nil {
			xv = recode(xv, p.RecodeX)
		}
		yv := filtered.Value(r, p.Y)
		if xv == nil || yv == nil {
			continue
		}
		x, ok := table.Float(xv)
		if !ok {
			return res, core.NewNonNumericError(p.X, xv)
		}
		y, ok := table.Float(yv)
		if !ok {
			return res, core.NewNonNumericError(p.Y, yv)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	res.N = len(xs)
	if res.N < 2 {
		return res, fmt.Errorf("%w: %s has %d complete rows", core.ErrInsufficientData, p, res.N)
	}
	res.R = inference.Pearson(xs, ys)
	if math.IsNaN(res.R) {
		return res, fmt.Errorf("%w: %s is undefined for %d rows with constant or missing values",
			core.ErrInsufficientData, p, res.N)
	}
	res.PValue = a.dist.CorrelationPValue(res.R, res.N)
	res.Margin, err = a.dist.CorrelationMargin(res.R, res.N, a.confidence)
	if err != nil {
		return res, err
	}
	return res, nil
}

// Run computes every pair. A pair that fails is kept as a skipped result
// carrying the reason, so one missing column does not hide the others.
func (a *Analyzer) Run(data *table.Table, pairs []Pair) []Result {
	results := make([]Result, 0, len(pairs))
	for _, p := range pairs {
		res, err := a.Correlate(data, p)
		if err != nil {
			switch {
			case core.IsDataIntegrityError(err):
				a.logger.Warn("[Correlation] %s: %v", p, err)
			case errors.Is(err, core.ErrMissingColumn), errors.Is(err, core.ErrInsufficientData):
				a.logger.Debug("[Correlation] skipping %s: %v", p, err)
			default:
				a.logger.Warn("[Correlation] %s: %v", p, err)
			}
			res = Result{Pair: p, N: res.N, Skipped: err.Error()}
		}
		results = append(results, res)
	}
	return results
}

// Report renders results as the correlations.txt body
func Report(results []Result) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "\n%s\n%s\n", r.Pair, r)
	}
	return b.String()
}

func recode(v any, mapping map[string]float64) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	f, ok := mapping[s]
	if !ok {
		return nil
	}
	return f
}
